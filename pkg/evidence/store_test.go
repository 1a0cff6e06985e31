package evidence

import (
	"context"
	"testing"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cableintel/catalog/ent"
)

func TestContentHash_Deterministic(t *testing.T) {
	h1 := ContentHash("https://example.com/cable", "# Cable\nUSB-C to USB-C", "<html>body</html>")
	h2 := ContentHash("https://example.com/cable", "# Cable\nUSB-C to USB-C", "<html>body</html>")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
}

func TestContentHash_DiffersOnMarkdownChange(t *testing.T) {
	h1 := ContentHash("https://example.com/cable", "100W USB4 cable", "<html></html>")
	h2 := ContentHash("https://example.com/cable", "60W USB4 cable", "<html></html>")
	assert.NotEqual(t, h1, h2)
}

func TestContentHash_DiffersOnURLChange(t *testing.T) {
	h1 := ContentHash("https://example.com/a", "same markdown", "same html")
	h2 := ContentHash("https://example.com/b", "same markdown", "same html")
	assert.NotEqual(t, h1, h2)
}

func TestContentHash_NoFieldBoundaryCollision(t *testing.T) {
	// Concatenating without separators would make ("ab", "c", "") collide
	// with ("a", "bc", ""); the null-byte separator must prevent that.
	h1 := ContentHash("ab", "c", "")
	h2 := ContentHash("a", "bc", "")
	assert.NotEqual(t, h1, h2)
}

func TestNewStore_PanicsOnNilClient(t *testing.T) {
	assert.Panics(t, func() {
		NewStore(nil)
	})
}

func TestStore_Insert_SetsGeneratedID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := entsql.OpenDB(dialect.Postgres, db)
	client := ent.NewClient(ent.Driver(drv))
	defer client.Close()

	mock.ExpectExec("INSERT INTO").
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewStore(client)
	row, err := store.Insert(context.Background(), "workflow-1", "https://example.com/cable", "https://example.com/cable", "<html></html>", "# Cable")
	require.NoError(t, err)
	assert.NotEmpty(t, row.ID)
	assert.Equal(t, "workflow-1", row.WorkflowID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
