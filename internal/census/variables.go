package census

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CheckVariables fetches the dataset's variable catalog (variables.html is an
// HTML table, one row per variable) and verifies every wanted measure is
// still listed. Run before a pull so a renamed variable fails loudly instead
// of as a cryptic 400 from the data endpoint.
func (c *Client) CheckVariables(ctx context.Context, want []string) error {
	catalog, err := c.fetchVariableNames(ctx)
	if err != nil {
		return fmt.Errorf("census variable catalog: %w", err)
	}

	var missing []string
	for _, v := range want {
		if !catalog[v] {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("variables not in catalog: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (c *Client) fetchVariableNames(ctx context.Context) (map[string]bool, error) {
	reqURL := c.cfg.BaseURL + "/variables.html"

	if c.lim != nil {
		if err := c.lim.WaitURL(ctx, reqURL); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "bdspipe/1.0 (+local)")

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("parse variables.html: %w", err)
	}

	names := make(map[string]bool)
	doc.Find("table tr").Each(func(_ int, tr *goquery.Selection) {
		cell := tr.Find("td").First()
		if cell.Length() == 0 {
			return // header row
		}
		name := strings.TrimSpace(cell.Text())
		if name != "" {
			names[name] = true
		}
	})
	if len(names) == 0 {
		return nil, fmt.Errorf("no variables found in catalog page")
	}
	return names, nil
}
