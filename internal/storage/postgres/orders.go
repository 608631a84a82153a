package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/phan14/du-an-ss2/internal/domain/errors"
	"github.com/phan14/du-an-ss2/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

// itemDoc and deliveryDoc are the JSONB layouts of order items and delivery history.
type itemDoc struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Size        string `json:"size"`
	Color       string `json:"color,omitempty"`
	UnitPrice   int64  `json:"unitPrice"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type deliveryDoc struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`
	Quantity        int       `json:"quantity"`
	PaymentReceived int64     `json:"paymentReceived,omitempty"`
	Notes           string    `json:"notes,omitempty"`
}

func encodeItems(items []model.OrderItem) ([]byte, error) {
	docs := make([]itemDoc, 0, len(items))
	for _, it := range items {
		docs = append(docs, itemDoc(it))
	}
	return json.Marshal(docs)
}

func decodeItems(raw []byte) ([]model.OrderItem, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var docs []itemDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}
	items := make([]model.OrderItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, model.OrderItem(d))
	}
	return items, nil
}

func encodeHistory(history []model.DeliveryRecord) ([]byte, error) {
	docs := make([]deliveryDoc, 0, len(history))
	for _, h := range history {
		docs = append(docs, deliveryDoc{ID: h.ID, Date: h.Date, Quantity: h.Quantity, PaymentReceived: h.Payment, Notes: h.Note})
	}
	return json.Marshal(docs)
}

func decodeHistory(raw []byte) ([]model.DeliveryRecord, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var docs []deliveryDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}
	history := make([]model.DeliveryRecord, 0, len(docs))
	for _, d := range docs {
		history = append(history, model.DeliveryRecord{ID: d.ID, Date: d.Date, Quantity: d.Quantity, Payment: d.PaymentReceived, Note: d.Notes})
	}
	return history, nil
}

const orderColumns = `id, customer_id, items, total_amount, deposit_amount, status, status_reason,
                      deadline, created_at, notes, ai_analysis, actual_delivery_quantity, delivery_history`

func scanOrder(row pgx.Row) (model.Order, error) {
	var (
		o              model.Order
		items, history []byte
	)
	err := row.Scan(&o.ID, &o.CustomerID, &items, &o.TotalAmount, &o.DepositAmount, &o.Status, &o.StatusReason,
		&o.Deadline, &o.CreatedAt, &o.Notes, &o.AIAnalysis, &o.ActualDeliveryQuantity, &history)
	if err != nil {
		return o, err
	}
	if o.Items, err = decodeItems(items); err != nil {
		return o, err
	}
	if o.DeliveryHistory, err = decodeHistory(history); err != nil {
		return o, err
	}
	return o, nil
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, r.storage.fail("list orders", err)
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, r.storage.fail("scan order", err)
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, r.storage.fail("list orders", err)
	}
	return result, nil
}

func (r *orderRepository) Get(ctx context.Context, id string) (*model.Order, error) {
	o, err := scanOrder(r.storage.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if err != nil {
		return nil, r.storage.fail("get order", err)
	}
	return &o, nil
}

func upsertOrder(ctx context.Context, db execer, o model.Order) error {
	items, err := encodeItems(o.Items)
	if err != nil {
		return err
	}
	history, err := encodeHistory(o.DeliveryHistory)
	if err != nil {
		return err
	}
	const query = `INSERT INTO orders (` + orderColumns + `)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
                   ON CONFLICT (id) DO UPDATE SET
                       customer_id = EXCLUDED.customer_id,
                       items = EXCLUDED.items,
                       total_amount = EXCLUDED.total_amount,
                       deposit_amount = EXCLUDED.deposit_amount,
                       status = EXCLUDED.status,
                       status_reason = EXCLUDED.status_reason,
                       deadline = EXCLUDED.deadline,
                       created_at = EXCLUDED.created_at,
                       notes = EXCLUDED.notes,
                       ai_analysis = EXCLUDED.ai_analysis,
                       actual_delivery_quantity = EXCLUDED.actual_delivery_quantity,
                       delivery_history = EXCLUDED.delivery_history`
	_, err = db.Exec(ctx, query, o.ID, o.CustomerID, items, o.TotalAmount, o.DepositAmount, o.Status, o.StatusReason,
		o.Deadline, o.CreatedAt, o.Notes, o.AIAnalysis, o.ActualDeliveryQuantity, history)
	return err
}

func (r *orderRepository) Upsert(ctx context.Context, o model.Order) error {
	if err := upsertOrder(ctx, r.storage.pool, o); err != nil {
		return r.storage.fail("upsert order", err)
	}
	return nil
}

func (r *orderRepository) UpsertMany(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, o := range orders {
			if err := upsertOrder(ctx, tx, o); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return r.storage.fail("upsert orders", err)
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return r.storage.fail("delete order", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
