package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/cableintel/catalog/pkg/config"
	"github.com/cableintel/catalog/pkg/normalize"
	"github.com/cableintel/catalog/pkg/shared/apperrors"
	"github.com/cableintel/catalog/pkg/variant"
	"github.com/cableintel/catalog/pkg/webfetch"
)

// VendorExtractor implements discoverProductUrls/extractFromProductUrl for
// any Shopify-shaped storefront template; the template is passed per call.
type VendorExtractor struct {
	fetch      *webfetch.Client
	httpClient *retryablehttp.Client
}

// NewVendorExtractor builds a vendor template adapter. fetch is used for
// HTML discovery pages (via Firecrawl); httpClient talks directly to the
// storefront's own JSON endpoints (.js product payloads, suggest.json).
func NewVendorExtractor(fetch *webfetch.Client) *VendorExtractor {
	rc := retryablehttp.NewClient()
	rc.Logger = nil
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 15 * time.Second
	return &VendorExtractor{fetch: fetch, httpClient: rc}
}

type shopifyImage struct {
	Src string `json:"src"`
}

type shopifyVariant struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	SKU           string        `json:"sku"`
	FeaturedImage *shopifyImage `json:"featured_image"`
	Option1       string        `json:"option1"`
	Option2       string        `json:"option2"`
	Option3       string        `json:"option3"`
}

type shopifyProduct struct {
	Handle   string           `json:"handle"`
	Title    string           `json:"title"`
	Vendor   string           `json:"vendor"`
	BodyHTML string           `json:"body_html"`
	Images   []shopifyImage   `json:"images"`
	Variants []shopifyVariant `json:"variants"`
}

type suggestResponse struct {
	Resources struct {
		Results struct {
			Products []struct {
				Handle string `json:"handle"`
				Title  string `json:"title"`
				Body   string `json:"body"`
			} `json:"products"`
		} `json:"results"`
	} `json:"resources"`
}

// DiscoverProductURLs fetches the template's search page, walks any embedded
// JSON for {handle, title|name, variants[]} objects, filters by
// IncludeCandidate, and returns deduplicated canonical product URLs. Falls
// back to the vendor's search-suggest endpoint when the page yields nothing.
func (v *VendorExtractor) DiscoverProductURLs(ctx context.Context, tpl *config.TemplateConfig, maxItems int) ([]string, error) {
	urls, err := v.discoverFromSearchPage(ctx, tpl, maxItems)
	if err == nil && len(urls) > 0 {
		return urls, nil
	}

	return v.discoverFromSuggestEndpoint(ctx, tpl, maxItems)
}

func (v *VendorExtractor) discoverFromSearchPage(ctx context.Context, tpl *config.TemplateConfig, maxItems int) ([]string, error) {
	searchURL := fmt.Sprintf("%s%s?%s=%s", tpl.BaseURL, tpl.SearchPath, tpl.SearchQueryParam, url.QueryEscape(strings.Join(tpl.SearchTerms, " ")))
	snap, err := v.fetch.Scrape(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snap.HTML))
	if err != nil {
		return nil, apperrors.NewExtractionError(tpl.ID, fmt.Errorf("parse search page html: %w", err))
	}

	candidates := map[string]shopifyProduct{}
	doc.Find("script[type='application/json']").Each(func(_ int, s *goquery.Selection) {
		collectProductObjects(s.Text(), candidates)
	})
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		collectProductObjects(s.Text(), candidates)
	})

	seen := map[string]bool{}
	var out []string
	for _, p := range candidates {
		if p.Handle == "" || p.Title == "" {
			continue
		}
		if !tpl.IncludeCandidate(p.Handle, p.Title, p.BodyHTML) {
			continue
		}
		canonical := canonicalProductURL(tpl, p.Handle)
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		out = append(out, canonical)
		if maxItems > 0 && len(out) >= maxItems {
			break
		}
	}
	return out, nil
}

// collectProductObjects walks an arbitrary JSON blob looking for any object
// shaped like {handle, title|name, variants: [...]}, per the "next data"
// discovery rule.
func collectProductObjects(raw string, into map[string]shopifyProduct) {
	var generic interface{}
	if err := json.Unmarshal([]byte(raw), &generic); err != nil {
		return
	}
	walkJSON(generic, into)
}

func walkJSON(node interface{}, into map[string]shopifyProduct) {
	switch v := node.(type) {
	case map[string]interface{}:
		if looksLikeProduct(v) {
			p := shopifyProduct{}
			b, _ := json.Marshal(v)
			if json.Unmarshal(b, &p) == nil && p.Handle != "" {
				into[p.Handle] = p
			}
		}
		for _, val := range v {
			walkJSON(val, into)
		}
	case []interface{}:
		for _, item := range v {
			walkJSON(item, into)
		}
	}
}

func looksLikeProduct(m map[string]interface{}) bool {
	_, hasHandle := m["handle"]
	_, hasTitle := m["title"]
	_, hasName := m["name"]
	_, hasVariants := m["variants"]
	return hasHandle && (hasTitle || hasName) && hasVariants
}

func (v *VendorExtractor) discoverFromSuggestEndpoint(ctx context.Context, tpl *config.TemplateConfig, maxItems int) ([]string, error) {
	q := strings.Join(tpl.SearchTerms, " ")
	suggestURL := fmt.Sprintf("%s/search/suggest.json?q=%s&resources[type]=product", tpl.BaseURL, url.QueryEscape(q))

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, suggestURL, nil)
	if err != nil {
		return nil, apperrors.NewFetchError(suggestURL, err)
	}
	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewFetchError(suggestURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewFetchError(suggestURL, fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	var parsed suggestResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperrors.NewFetchError(suggestURL, fmt.Errorf("decode suggest response: %w", err))
	}

	seen := map[string]bool{}
	var out []string
	for _, p := range parsed.Resources.Results.Products {
		if !tpl.IncludeCandidate(p.Handle, p.Title, p.Body) {
			continue
		}
		canonical := canonicalProductURL(tpl, p.Handle)
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		out = append(out, canonical)
		if maxItems > 0 && len(out) >= maxItems {
			break
		}
	}
	return out, nil
}

func canonicalProductURL(tpl *config.TemplateConfig, handle string) string {
	u := tpl.BaseURL + tpl.ProductPathPrefix + handle
	u = strings.TrimSuffix(u, "/")
	if i := strings.Index(u, "#"); i >= 0 {
		u = u[:i]
	}
	return u
}

// ExtractFromProductURL resolves the handle from url, fetches the product
// JSON payload, and emits one Result with one ParsedCable per Shopify
// variant.
func (v *VendorExtractor) ExtractFromProductURL(ctx context.Context, tpl *config.TemplateConfig, productURL string) (*Result, error) {
	handle := handleFromURL(tpl, productURL)
	if handle == "" {
		return nil, apperrors.NewExtractionError(tpl.ID, fmt.Errorf("could not resolve product handle from %s", productURL))
	}

	product, err := v.fetchProductJSON(ctx, tpl, handle)
	if err != nil {
		return nil, err
	}

	snap, err := v.fetch.Scrape(ctx, productURL)
	if err != nil {
		return nil, err
	}

	cables := make([]variant.ParsedCable, 0, len(product.Variants))
	for _, sv := range product.Variants {
		cables = append(cables, v.buildCable(tpl, product, sv))
	}

	return &Result{
		Source: Snapshot{
			URL:          productURL,
			CanonicalURL: productURL,
			Markdown:     snap.Markdown,
			HTML:         snap.HTML,
		},
		Cables: cables,
	}, nil
}

func handleFromURL(tpl *config.TemplateConfig, productURL string) string {
	rest := strings.TrimPrefix(productURL, tpl.BaseURL+tpl.ProductPathPrefix)
	rest = strings.TrimSuffix(rest, "/")
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

func (v *VendorExtractor) fetchProductJSON(ctx context.Context, tpl *config.TemplateConfig, handle string) (*shopifyProduct, error) {
	jsURL := fmt.Sprintf("%s%s%s.js", tpl.BaseURL, tpl.ProductPathPrefix, handle)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, jsURL, nil)
	if err != nil {
		return nil, apperrors.NewFetchError(jsURL, err)
	}
	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewFetchError(jsURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewFetchError(jsURL, fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	var p shopifyProduct
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, apperrors.NewExtractionError(tpl.ID, fmt.Errorf("decode product json: %w", err))
	}
	p.Handle = handle
	return &p, nil
}

func (v *VendorExtractor) buildCable(tpl *config.TemplateConfig, p *shopifyProduct, sv shopifyVariant) variant.ParsedCable {
	brand := ResolveBrand(p.Vendor, tpl.Name)
	model := ResolveModel(p.Title, brand)

	fullText := strings.Join([]string{p.Title, p.BodyHTML}, " ")
	pair := ResolveConnectorPair(p.Title, fullText)

	var variantWatts *float64
	if v, ok := normalize.ParsePositiveNumber(wattsOnly(variantOptionText(sv))); ok {
		variantWatts = &v
	}
	maxWatts, pd, epr, powerSnippet := ResolvePower([]string{p.Title, p.BodyHTML, variantOptionText(sv)}, variantWatts)
	usbGen, maxGbps, dataSnippet := ResolveData([]string{p.Title, p.BodyHTML}, pair.From, pair.To)
	videoExplicit, resolution, refreshHz, videoSnippet := ResolveVideo([]string{p.Title, p.BodyHTML})

	variantImage := ""
	if sv.FeaturedImage != nil {
		variantImage = sv.FeaturedImage.Src
	}
	productImages := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		productImages = append(productImages, img.Src)
	}
	images := MergeImages(variantImage, productImages)

	label := ResolveVariantLabel(sv.Title, model, sv.SKU, []string{sv.Option1, sv.Option2, sv.Option3})

	eb := &evidenceBuilder{}
	eb.mandatory("brand", "", firstNonEmpty(p.Vendor, tpl.Name))
	eb.mandatory("model", "", p.Title)
	eb.mandatory("connectorPair.from", "", pair.Snippet)
	eb.mandatory("connectorPair.to", "", pair.Snippet)
	eb.optional("power.maxWatts", "", powerSnippet)
	eb.optional("data.maxGbps", "", dataSnippet)
	eb.optional("video.explicitlySupported", "", videoSnippet)

	return variant.ParsedCable{
		Brand:         brand,
		Model:         model,
		Variant:       label,
		SKU:           sv.SKU,
		ConnectorFrom: string(pair.From),
		ConnectorTo:   string(pair.To),
		ProductURL:    canonicalProductURL(tpl, p.Handle),
		ImageURLs:     images,
		Power:         variant.ParsedPower{MaxWatts: maxWatts, PDSupported: pd, EPRSupported: epr},
		Data:          variant.ParsedData{USBGeneration: usbGen, MaxGbps: maxGbps},
		Video:         variant.ParsedVideo{ExplicitlySupported: videoExplicit, MaxResolution: resolution, MaxRefreshHz: refreshHz},
		EvidenceRefs:  eb.build(),
	}
}

func variantOptionText(sv shopifyVariant) string {
	return strings.Join([]string{sv.Title, sv.Option1, sv.Option2, sv.Option3}, " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
