package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("CATALOG_TEST_BASE_URL", "https://vendor.example.com")

	in := []byte(`base_url: ${CATALOG_TEST_BASE_URL}/products`)
	out := ExpandEnv(in)
	assert.Equal(t, "base_url: https://vendor.example.com/products", string(out))
}

func TestExpandEnv_MissingVarExpandsEmpty(t *testing.T) {
	out := ExpandEnv([]byte("value: ${CATALOG_TEST_DOES_NOT_EXIST}"))
	assert.Equal(t, "value: ", string(out))
}
