package analytics

import (
	"database/sql"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/rs/zerolog/log"
)

const clicksDDL = `
CREATE TABLE IF NOT EXISTS clicks (
	link_type   LowCardinality(String),
	link_id     UInt64,
	referrer    String,
	user_agent  String,
	country     String,
	occurred_at DateTime
) ENGINE = MergeTree()
ORDER BY (link_type, link_id, occurred_at)`

// ClickHouse is an optional high-volume analytics sink. Events are
// buffered in memory and flushed in batches; when the buffer is full
// new events are dropped rather than blocking the resolve path.
type ClickHouse struct {
	db     *sql.DB
	geo    *Geo
	events chan Event
	done   chan struct{}
}

// ConnectClickHouse opens the connection, ensures the clicks table
// exists, and starts the flush worker. geo may be nil.
func ConnectClickHouse(addr, user, password, dbName string, geo *Geo) (*ClickHouse, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: dbName,
			Username: user,
			Password: password,
		},
		DialTimeout: 30 * time.Second,
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err := conn.Ping(); err != nil {
		return nil, err
	}
	if _, err := conn.Exec(clicksDDL); err != nil {
		return nil, err
	}

	ch := &ClickHouse{
		db:     conn,
		geo:    geo,
		events: make(chan Event, 1000),
		done:   make(chan struct{}),
	}
	go ch.worker()
	return ch, nil
}

// Emit queues an event for the next batch. Drops the event with a
// warning when the buffer is full.
func (ch *ClickHouse) Emit(event Event) {
	select {
	case ch.events <- event:
	default:
		log.Warn().
			Str("link_type", string(event.LinkType)).
			Uint("link_id", event.LinkID).
			Msg("analytics buffer full, dropping event")
	}
}

func (ch *ClickHouse) worker() {
	var batch []Event
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := ch.insert(batch); err != nil {
			log.Warn().Err(err).Int("events", len(batch)).Msg("clickhouse flush failed")
		}
		batch = nil
	}

	for {
		select {
		case event := <-ch.events:
			batch = append(batch, event)
			if len(batch) >= 100 {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-ch.done:
			flush()
			return
		}
	}
}

func (ch *ClickHouse) insert(batch []Event) error {
	tx, err := ch.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO clicks (link_type, link_id, referrer, user_agent, country, occurred_at) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, event := range batch {
		_, err := stmt.Exec(
			string(event.LinkType),
			uint64(event.LinkID),
			event.Referrer,
			event.UserAgent,
			ch.geo.Country(event.IP),
			event.OccurredAt,
		)
		if err != nil {
			log.Warn().Err(err).Uint("link_id", event.LinkID).Msg("clickhouse insert failed")
			continue
		}
	}
	return tx.Commit()
}

// Close flushes the remaining batch and closes the connection.
func (ch *ClickHouse) Close() error {
	close(ch.done)
	return ch.db.Close()
}
