package broker

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/mozilla-services/amqpd/message"
)

// PostgresLog is the optional durable backend selected by --storage=postgres
// (cmd/amqpd). Grounded on the retrieval pack's deepanshu-rawat6-go-polyglot-persistence
// repo's lib/pq + database/sql pairing: a plain SQL table, no ORM.
type PostgresLog struct {
	db *sql.DB
}

// OpenPostgresLog connects to dsn and ensures the messages table exists.
func OpenPostgresLog(ctx context.Context, dsn string) (*PostgresLog, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, createMessagesTable); err != nil {
		db.Close()
		return nil, err
	}
	return &PostgresLog{db: db}, nil
}

const createMessagesTable = `
CREATE TABLE IF NOT EXISTS messages (
	id           BIGSERIAL PRIMARY KEY,
	queue        TEXT NOT NULL,
	exchange     TEXT NOT NULL,
	routing_key  TEXT NOT NULL,
	content_type TEXT,
	body         BYTEA NOT NULL,
	published_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func (p *PostgresLog) AppendMessage(ctx context.Context, queue string, msg *Message) error {
	var contentType sql.NullString
	if msg.Header != nil && msg.Header.ContentType != nil {
		contentType = sql.NullString{String: *msg.Header.ContentType, Valid: true}
	}
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO messages (queue, exchange, routing_key, content_type, body) VALUES ($1, $2, $3, $4, $5)`,
		queue, msg.Exchange, msg.RoutingKey, contentType, msg.ConcatenatedBody(),
	)
	return err
}

// Replay loads every message ever appended for queue, oldest first. It
// does not delete rows: re-running the daemon against the same database
// replays the same backlog, which is the simplest correct behavior for an
// optional add-on rather than the primary delivery path.
func (p *PostgresLog) Replay(ctx context.Context, queue string) ([]*Message, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT exchange, routing_key, content_type, body FROM messages WHERE queue = $1 ORDER BY id ASC`,
		queue)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Message
	for rows.Next() {
		var exchange, routingKey string
		var contentType sql.NullString
		var body []byte
		if err := rows.Scan(&exchange, &routingKey, &contentType, &body); err != nil {
			return nil, err
		}
		header := &message.ContentHeader{ClassID: message.ClassBasic, BodySize: uint64(len(body))}
		if contentType.Valid {
			ct := contentType.String
			header.ContentType = &ct
		}
		out = append(out, &Message{
			ID:         NewMessageID(),
			Header:     header,
			Exchange:   exchange,
			RoutingKey: routingKey,
			Fragments:  [][]byte{body},
		})
	}
	return out, rows.Err()
}

func (p *PostgresLog) Close() error {
	return p.db.Close()
}
