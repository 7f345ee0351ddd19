package schema

import (
	"context"

	"github.com/twmb/franz-go/pkg/sr"
)

// A SchemaIdentifier resolves the registry id for a subject's schema.
type SchemaIdentifier interface {
	DetermineID(
		ctx context.Context, subject, avroSchemaText string,
	) (int, error)
}

// A SchemaCreater registers schemas in the schema registry and
// returns their ids.
type SchemaCreater struct {
	cl *sr.Client
}

func NewSchemaCreater(cl *sr.Client) SchemaCreater {
	return SchemaCreater{cl}
}

func (c SchemaCreater) DetermineID(
	ctx context.Context, subject, avroSchemaText string,
) (int, error) {
	ss, err := c.cl.CreateSchema(ctx, subject, sr.Schema{
		Schema: avroSchemaText,
		Type:   sr.TypeAvro,
	})
	if err != nil {
		return 0, err
	}
	return ss.ID, nil
}
