package ssr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	errs "github.com/lumina-dev/lumina/internal/errors"
	"github.com/lumina-dev/lumina/pkg/hydrate"
)

// DefaultGlobal is the well-known global the payload is embedded under.
const DefaultGlobal = "__LUMINA_DATA__"

// WritePayload writes the script tag that embeds the hydration payload into
// a page. encoding/json escapes <, >, and & by default, so a "</script>"
// inside payload data cannot terminate the tag early.
func WritePayload(w io.Writer, global string, p *hydrate.Payload) error {
	if global == "" {
		global = DefaultGlobal
	}
	if p == nil {
		p = hydrate.EmptyPayload()
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return errs.New("L020").Wrap(err)
	}

	_, err = fmt.Fprintf(w, "<script>window.%s = %s;</script>", global, raw)
	return err
}

// ExtractPayload pulls the embedded payload JSON back out of a rendered
// page. Returns false when the page embeds no payload under the global.
func ExtractPayload(page []byte, global string) ([]byte, bool) {
	if global == "" {
		global = DefaultGlobal
	}

	marker := []byte("window." + global + " = ")
	start := bytes.Index(page, marker)
	if start == -1 {
		return nil, false
	}
	rest := page[start+len(marker):]

	end := bytes.Index(rest, []byte(";</script>"))
	if end == -1 {
		return nil, false
	}
	return rest[:end], true
}

// RenderPage writes a minimal HTML document with the payload embedded.
// Real applications render their own markup and call WritePayload where the
// script belongs; this exists for handlers that only serve hydration data
// plus a shell.
func RenderPage(w io.Writer, title string, global string, p *hydrate.Payload) error {
	if _, err := fmt.Fprintf(w, "<!DOCTYPE html><html><head><title>%s</title></head><body><div id=\"root\"></div>", title); err != nil {
		return err
	}
	if err := WritePayload(w, global, p); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</body></html>")
	return err
}
