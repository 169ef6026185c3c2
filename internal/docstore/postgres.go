package docstore

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type postgresStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres returns a Store that keeps every collection in the documents table as jsonb rows.
func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresStore{pool: pool, logger: logger}
}

func (s *postgresStore) List(ctx context.Context, collection string) ([]Document, error) {
	const q = `
SELECT id, fields
FROM documents
WHERE collection = $1
ORDER BY id ASC
`
	rows, err := s.pool.Query(ctx, q, collection)
	if err != nil {
		s.logger.Error("docstore: list", zap.String("collection", collection), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.Fields); err != nil {
			return nil, err
		}
		if d.Fields == nil {
			d.Fields = map[string]interface{}{}
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("docstore: list rows", zap.String("collection", collection), zap.Error(err))
		return nil, err
	}
	s.logger.Debug("docstore: list", zap.String("collection", collection), zap.Int("count", len(result)))
	return result, nil
}

func (s *postgresStore) Set(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	const q = `
INSERT INTO documents (collection, id, fields)
VALUES ($1, $2, COALESCE($3, '{}'::jsonb))
ON CONFLICT (collection, id) DO UPDATE SET
    fields = EXCLUDED.fields,
    updated_at = now()
`
	if fields == nil {
		fields = map[string]interface{}{}
	}
	if _, err := s.pool.Exec(ctx, q, collection, id, fields); err != nil {
		s.logger.Error("docstore: set", zap.String("collection", collection), zap.String("id", id), zap.Error(err))
		return err
	}
	s.logger.Debug("docstore: set", zap.String("collection", collection), zap.String("id", id))
	return nil
}

func (s *postgresStore) Delete(ctx context.Context, collection, id string) error {
	cmd, err := s.pool.Exec(ctx, `DELETE FROM documents WHERE collection = $1 AND id = $2`, collection, id)
	if err != nil {
		s.logger.Error("docstore: delete", zap.String("collection", collection), zap.String("id", id), zap.Error(err))
		return err
	}
	s.logger.Debug("docstore: delete", zap.String("collection", collection), zap.String("id", id), zap.Int64("rows", cmd.RowsAffected()))
	return nil
}

func (s *postgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
