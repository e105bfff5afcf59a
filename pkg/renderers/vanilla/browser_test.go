package vanilla_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"testing"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/goliatone/go-jsonfields/pkg/jsonfmt"
	"github.com/goliatone/go-jsonfields/pkg/render"
)

var chromeBinaries = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"headless-shell",
}

func chromeAvailable() bool {
	for _, name := range chromeBinaries {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

// The runtime shipped to browsers and the Go formatter must agree on every
// input, including the ones that are left alone.
func TestBrowserRuntimeMatchesFormatter(t *testing.T) {
	if testing.Short() {
		t.Skip("browser test skipped in short mode")
	}
	if !chromeAvailable() {
		t.Skip("no chrome binary found")
	}

	page := renderPage(t, newRenderer(t), sampleForm(), render.RenderOptions{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := chromedp.Run(ctx,
		chromedp.Navigate(srv.URL),
		chromedp.WaitReady("#id_metadata", chromedp.ByQuery),
	); err != nil {
		t.Fatalf("load page: %v", err)
	}

	inputs := []string{
		`{"a":1,"b":[1,2,3]}`,
		`{invalid json`,
		`"hello"`,
		`{"z":1,"a":{"y":[],"x":{}}}`,
		`[1.0,1E3,-0,1e400,0.1]`,
		`{"a":1,"a":2,"b":3}`,
		`"<b>&amp;</b>é"`,
		``,
	}

	for _, input := range inputs {
		var (
			dispatched bool
			got        string
		)
		err := chromedp.Run(ctx,
			chromedp.SetValue("#id_metadata", input, chromedp.ByQuery),
			chromedp.Evaluate(`document.querySelector("#id_metadata").dispatchEvent(new Event("change"))`, &dispatched),
			chromedp.Value("#id_metadata", &got, chromedp.ByQuery),
		)
		if err != nil {
			t.Fatalf("drive %q: %v", input, err)
		}
		if want := jsonfmt.Format(input); got != want {
			t.Fatalf("input %q: browser produced %q, formatter produced %q", input, got, want)
		}
	}

	var (
		dispatched bool
		untouched  string
	)
	err := chromedp.Run(ctx,
		chromedp.SetValue("#id_description", `{"x":1}`, chromedp.ByQuery),
		chromedp.Evaluate(`document.querySelector("#id_description").dispatchEvent(new Event("change"))`, &dispatched),
		chromedp.Value("#id_description", &untouched, chromedp.ByQuery),
	)
	if err != nil {
		t.Fatalf("drive description: %v", err)
	}
	if untouched != `{"x":1}` {
		t.Fatalf("expected non-target field untouched, got %q", untouched)
	}
}
