package render

import (
	"github.com/ryanuber/columnize"

	"github.com/socotra/jwtkit/config"
)

// Config writes every resolved key with its value and source. Secret
// values are masked.
func (r *Renderer) Config(cfg *config.Resolved, format Format) error {
	if format == FormatJSON {
		out := make(map[string]map[string]string, len(cfg.Keys()))
		for _, key := range cfg.Keys() {
			out[key] = map[string]string{
				"value":  cfg.Masked(key),
				"source": string(cfg.Source(key)),
			}
		}
		return r.json(out)
	}

	rows := []string{"Key | Value | Source", "--- | ----- | ------"}
	for _, key := range cfg.Keys() {
		rows = append(rows, key+" | "+cfg.Masked(key)+" | "+string(cfg.Source(key)))
	}
	r.Line("%s", columnize.Format(rows, &columnize.Config{Glue: "  ", Empty: "-"}))
	return nil
}
