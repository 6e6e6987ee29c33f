package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/LeSteak11/social-media-downloader/internal/domain"
	"github.com/LeSteak11/social-media-downloader/internal/naming"
)

// shortcodeRe extracts the post shortcode from /p/<key>/ or /reel/<key>/
// style paths.
var shortcodeRe = regexp.MustCompile(`instagram\.com/(?:p|reel)/([A-Za-z0-9_-]+)`)

// InstagramProvider implements domain.Provider for Instagram posts. It
// scrapes the ld+json structured data embedded in the public post page;
// this is an undocumented page contract, so a resolve returning
// domain.ErrNoStructuredData means the site changed or withheld markup,
// not that the caller did anything wrong.
type InstagramProvider struct {
	client *http.Client
	// userAgent is sent on page fetches. The site serves different markup
	// without a browser-like header, so this is configuration rather than
	// a hardcoded constant.
	userAgent string
	// baseURL is the site root pages are fetched from; overridden in tests.
	baseURL string
	logger  *zap.Logger
}

// NewInstagramProvider creates a new Instagram provider
func NewInstagramProvider(client *http.Client, userAgent string, logger *zap.Logger) *InstagramProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &InstagramProvider{
		client:    client,
		userAgent: userAgent,
		baseURL:   "https://www.instagram.com",
		logger:    logger,
	}
}

// ID returns the provider identifier
func (p *InstagramProvider) ID() string {
	return "instagram"
}

// Matches reports whether the URL is an Instagram post URL a shortcode can
// be extracted from.
func (p *InstagramProvider) Matches(url string) bool {
	return strings.Contains(url, "instagram.com") && p.extractShortcode(url) != ""
}

func (p *InstagramProvider) extractShortcode(url string) string {
	m := shortcodeRe.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// ldPost is the subset of the ld+json block the resolver cares about.
// Author, Image and Video are kept raw because the site emits them in
// several shapes (string, array, nested object).
type ldPost struct {
	Type   string          `json:"@type"`
	Author json.RawMessage `json:"author"`
	Image  json.RawMessage `json:"image"`
	Video  json.RawMessage `json:"video"`
}

// Resolve fetches the canonical post page and extracts its media list
func (p *InstagramProvider) Resolve(ctx context.Context, url string) (*domain.ResolveResult, error) {
	shortcode := p.extractShortcode(url)
	if shortcode == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidURL, url)
	}

	postURL := fmt.Sprintf("%s/p/%s/", p.baseURL, shortcode)
	p.logger.Debug("Fetching post page",
		zap.String("shortcode", shortcode),
		zap.String("url", postURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, postURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchPage, err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchPage, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %s", domain.ErrFetchPage, resp.Status)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchPage, err)
	}

	post, err := findImageObject(doc)
	if err != nil {
		return nil, err
	}

	author, err := extractAuthor(post.Author)
	if err != nil {
		return nil, err
	}

	items := buildItems(shortcode, post)
	if len(items) == 0 {
		return nil, domain.ErrNoMediaFound
	}

	return &domain.ResolveResult{
		Provider:  p.ID(),
		Username:  naming.SanitizeIdentity(author),
		Shortcode: shortcode,
		Items:     items,
	}, nil
}

// findImageObject walks the document's ld+json script blocks and returns the
// first that parses as JSON with @type == "ImageObject".
func findImageObject(doc *html.Node) (*ldPost, error) {
	for _, raw := range structuredDataBlocks(doc) {
		var post ldPost
		if err := json.Unmarshal([]byte(raw), &post); err != nil {
			continue
		}
		if post.Type == "ImageObject" {
			return &post, nil
		}
	}
	return nil, domain.ErrNoStructuredData
}

// structuredDataBlocks returns the text content of every
// <script type="application/ld+json"> element in document order.
func structuredDataBlocks(doc *html.Node) []string {
	var blocks []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "script" && scriptType(n) == "application/ld+json" {
			var sb strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					sb.WriteString(c.Data)
				}
			}
			blocks = append(blocks, sb.String())
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return blocks
}

func scriptType(n *html.Node) string {
	for _, a := range n.Attr {
		if a.Key == "type" {
			return a.Val
		}
	}
	return ""
}

// extractAuthor reads the account handle from author.identifier.value,
// falling back to author itself when it is a plain string.
func extractAuthor(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", domain.ErrMissingAuthor
	}

	var obj struct {
		Identifier struct {
			Value string `json:"value"`
		} `json:"identifier"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Identifier.Value != "" {
		return obj.Identifier.Value, nil
	}

	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil && plain != "" {
		return plain, nil
	}

	return "", domain.ErrMissingAuthor
}

// buildItems enumerates image then video fields. Each field may be a single
// URL string (one item, no index) or an array (one item per element with a
// 1-based index in array order). Images and videos are independent and
// additive; a post can yield both. IDs must stay unique within the result,
// so a single video in a post that also has a single image gets a
// kind-suffixed id.
func buildItems(shortcode string, post *ldPost) []domain.MediaItem {
	var items []domain.MediaItem
	items = append(items, kindItems(shortcode, domain.KindImage, post.Image)...)
	items = append(items, kindItems(shortcode, domain.KindVideo, post.Video)...)

	seen := make(map[string]bool, len(items))
	for i, item := range items {
		if seen[item.ID] {
			items[i].ID = fmt.Sprintf("%s_%s", item.ID, item.Kind)
		}
		seen[items[i].ID] = true
	}
	return items
}

func kindItems(shortcode string, kind domain.MediaKind, raw json.RawMessage) []domain.MediaItem {
	if len(raw) == 0 {
		return nil
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if single == "" {
			return nil
		}
		return []domain.MediaItem{newItem(shortcode, kind, single, 0)}
	}

	var arr []interface{}
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil
	}

	var items []domain.MediaItem
	for i, v := range arr {
		u, ok := v.(string)
		if !ok || u == "" {
			continue
		}
		items = append(items, newItem(shortcode, kind, u, i+1))
	}
	return items
}

func newItem(shortcode string, kind domain.MediaKind, url string, index int) domain.MediaItem {
	id := shortcode
	if index > 0 {
		id = fmt.Sprintf("%s_%d", shortcode, index)
	}
	return domain.MediaItem{
		ID:          id,
		Kind:        kind,
		PreviewURL:  url,
		DownloadURL: url,
		Extension:   kind.Extension(),
		Index:       index,
	}
}
