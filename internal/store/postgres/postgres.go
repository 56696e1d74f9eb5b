// Package postgres is the durable Store backend, a pgxpool-backed mirror
// of the in-memory one for production deployments.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/model"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/store"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	ctxPing, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) CreateRecord(ctx context.Context, rec model.PersistedRecord) (model.PersistedRecord, error) {
	paramsJSON := []byte(`{}`)
	if rec.Parameters != nil {
		if b, err := json.Marshal(rec.Parameters); err == nil {
			paramsJSON = b
		}
	}
	if rec.Status == "" {
		rec.Status = model.RecordPending
	}

	var out model.PersistedRecord
	var gotParams []byte
	err := s.pool.QueryRow(ctx, `
		insert into public.password_records
			(id, visitor_id, inviter_id, variant, parameters, emitted_text, start_time, end_time, status)
		values
			(coalesce(nullif($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5::jsonb, $6, $7, $8, $9)
		returning id::text, visitor_id, inviter_id, variant, parameters, emitted_text, start_time, end_time, status
	`, rec.RecordID, rec.VisitorID, rec.InviterID, string(rec.Variant), string(paramsJSON),
		rec.EmittedText, rec.StartTime, rec.EndTime, string(rec.Status)).Scan(
		&out.RecordID, &out.VisitorID, &out.InviterID, &out.Variant, &gotParams,
		&out.EmittedText, &out.StartTime, &out.EndTime, &out.Status,
	)
	if err != nil {
		return model.PersistedRecord{}, mapPgErr(err)
	}
	_ = json.Unmarshal(gotParams, &out.Parameters)
	return out, nil
}

func (s *Store) GetRecord(ctx context.Context, recordID string) (*model.PersistedRecord, error) {
	var out model.PersistedRecord
	var params []byte
	err := s.pool.QueryRow(ctx, `
		select id::text, visitor_id, inviter_id, variant, parameters, emitted_text, start_time, end_time, status
		from public.password_records
		where id = $1::uuid
	`, recordID).Scan(
		&out.RecordID, &out.VisitorID, &out.InviterID, &out.Variant, &params,
		&out.EmittedText, &out.StartTime, &out.EndTime, &out.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, mapPgErr(err)
	}
	_ = json.Unmarshal(params, &out.Parameters)
	return &out, nil
}

func (s *Store) ListRecords(ctx context.Context, f store.RecordFilter) ([]model.PersistedRecord, error) {
	query := `
		select id::text, visitor_id, inviter_id, variant, parameters, emitted_text, start_time, end_time, status
		from public.password_records
	`
	var where []string
	args := []any{}

	if f.VisitorID != 0 {
		args = append(args, f.VisitorID)
		where = append(where, fmt.Sprintf("visitor_id = $%d", len(args)))
	}
	if f.InviterID != 0 {
		args = append(args, f.InviterID)
		where = append(where, fmt.Sprintf("inviter_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(where) > 0 {
		query += " where " + joinAnd(where)
	}
	query += " order by start_time asc"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" limit $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgErr(err)
	}
	defer rows.Close()

	var out []model.PersistedRecord
	for rows.Next() {
		var rec model.PersistedRecord
		var params []byte
		if err := rows.Scan(
			&rec.RecordID, &rec.VisitorID, &rec.InviterID, &rec.Variant, &params,
			&rec.EmittedText, &rec.StartTime, &rec.EndTime, &rec.Status,
		); err != nil {
			return nil, mapPgErr(err)
		}
		_ = json.Unmarshal(params, &rec.Parameters)
		out = append(out, rec)
	}
	return out, nil
}

func (s *Store) UpdateRecordStatus(ctx context.Context, recordID string, status model.RecordStatus) (model.PersistedRecord, error) {
	var out model.PersistedRecord
	var params []byte
	err := s.pool.QueryRow(ctx, `
		update public.password_records
		set status = $2
		where id = $1::uuid
		returning id::text, visitor_id, inviter_id, variant, parameters, emitted_text, start_time, end_time, status
	`, recordID, string(status)).Scan(
		&out.RecordID, &out.VisitorID, &out.InviterID, &out.Variant, &params,
		&out.EmittedText, &out.StartTime, &out.EndTime, &out.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PersistedRecord{}, store.ErrNotFound
		}
		return model.PersistedRecord{}, mapPgErr(err)
	}
	_ = json.Unmarshal(params, &out.Parameters)
	return out, nil
}

func (s *Store) PurgeExpiredBefore(ctx context.Context, cutoff time.Time) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `
		with d as (
			delete from public.password_records
			where end_time < $1
			  and status != $2
			returning 1
		)
		select count(*) from d
	`, cutoff, string(model.RecordRevoked)).Scan(&n)
	if err != nil {
		return 0, mapPgErr(err)
	}
	return n, nil
}

func joinAnd(clauses []string) string {
	out := clauses[0]
	for _, c := range clauses[1:] {
		out += " and " + c
	}
	return out
}

func mapPgErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return store.ErrConflict
		case "23503":
			return store.ErrNotFound
		default:
			return fmt.Errorf("db_error %s: %s", pgErr.Code, pgErr.Message)
		}
	}
	return err
}
