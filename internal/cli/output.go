package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/learnhub/internal/catalog"
	"github.com/alexanderramin/learnhub/internal/domain"
	"github.com/spf13/cobra"
)

const (
	flagCatalog = "catalog"
	flagJSON    = "json"
)

// jsonOutput reports whether the command should print JSON instead of
// styled text.
func (a *App) jsonOutput(cmd *cobra.Command) bool {
	if forced, _ := cmd.Flags().GetBool(flagJSON); forced {
		return true
	}
	return a.IsInteractive == nil || !a.IsInteractive()
}

// render prints v as indented JSON or the styled text from styled.
func (a *App) render(cmd *cobra.Command, v any, styled func() string) error {
	out := cmd.OutOrStdout()
	if a.jsonOutput(cmd) {
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprint(out, styled())
	return err
}

// loadView returns the catalog from --catalog, else from the configured
// source, else an empty view.
func (a *App) loadView(cmd *cobra.Command) (domain.CatalogView, error) {
	if path, _ := cmd.Flags().GetString(flagCatalog); path != "" {
		if path == "-" {
			return catalog.Decode(cmd.InOrStdin(), catalog.FormatAuto)
		}
		return catalog.LoadFile(path)
	}
	if a.Catalog != nil {
		return a.Catalog.Load(commandContext(cmd))
	}
	return domain.CatalogView{}, nil
}

// readReply reads a model reply from the file argument, or stdin when the
// argument is absent or "-".
func readReply(cmd *cobra.Command, args []string) (string, error) {
	var r io.Reader = cmd.InOrStdin()
	if len(args) > 0 && args[0] != "-" {
		data, err := readFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading reply: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("reply is empty")
	}
	return string(data), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
