// Package content prepares GraphQL query documents for fragment inlining.
package content

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gqli/gql"
	"gqli/state"
)

// Content encapsulates the raw query document together with everything
// indexed from it before fragment substitution starts.
type Content struct {
	SrcName   string
	Query     string
	Operation string
	RefID     string
	Fragments gql.Table
}

// Prepare reads a query document and indexes its fragment definitions.
func Prepare(ctx context.Context, r io.Reader, srcName string, log *zap.Logger) (*Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	env := state.EnvFromContext(ctx)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read query document: %w", err)
	}

	c := &Content{
		SrcName: srcName,
		Query:   string(data),
	}

	if c.Fragments, err = gql.BuildTable(c.Query); err != nil {
		return nil, fmt.Errorf("unable to index fragment definitions: %w", err)
	}
	c.Operation = gql.OperationName(c.Query)

	// Operation name doubles as a stable reference ID for logs and debug
	// report, anonymous documents get a generated one.
	c.RefID = c.Operation
	if c.RefID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("unable to generate document reference ID: %w", err)
		}
		c.RefID = id.String()
		log.Debug("Document has no named operation, generated reference ID", zap.String("ref_id", c.RefID))
	}

	// Save pristine input and indexed fragments for debugging
	if env.Rpt != nil {
		env.Rpt.StoreData(fmt.Sprintf("source-%s-%s", c.RefID, filepath.Base(srcName)), data)
		if len(c.Fragments) > 0 {
			env.Rpt.StoreData(fmt.Sprintf("fragments-%s.txt", c.RefID), []byte(c.String()))
		}
	}

	log.Debug("Document prepared",
		zap.String("source", srcName), zap.String("operation", c.Operation), zap.Int("fragments", len(c.Fragments)))

	return c, nil
}
