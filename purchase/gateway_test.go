package purchase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-admin/apiclient"
	"inventory-admin/models"
)

type fakePoster struct {
	calls   int
	token   string
	req     models.CreatePurchaseRequest
	message string
	err     error
	wait    bool
}

func (f *fakePoster) CreatePurchase(ctx context.Context, token string, req models.CreatePurchaseRequest) (string, error) {
	f.calls++
	f.token = token
	f.req = req
	if f.wait {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.message, f.err
}

func testDraft() models.PurchaseDraft {
	draft, _ := Assemble("s1", []models.LineItem{
		{ProductID: "p1", Quantity: 3, UnitPrice: decimal.NewFromInt(10)},
		{ProductID: "p2", Quantity: 1, UnitPrice: decimal.NewFromInt(4)},
	})
	return draft
}

func TestSubmit_Success(t *testing.T) {
	poster := &fakePoster{message: "Purchase added"}
	now := time.Date(2026, 1, 4, 10, 30, 0, 0, time.UTC)
	g := NewGateway(poster, time.Second).WithClock(func() time.Time { return now })

	conf, err := g.Submit(context.Background(), "tok", testDraft())
	require.NoError(t, err)

	assert.Equal(t, "Purchase added", conf.Message)
	assert.Equal(t, 1, poster.calls)
	assert.Equal(t, "tok", poster.token)
	assert.Equal(t, "s1", poster.req.SupplierID)
	assert.Equal(t, now, poster.req.Date)
	assert.True(t, poster.req.TotalAmount.Equal(decimal.NewFromInt(34)))
	require.Len(t, poster.req.Products, 2)
	assert.Equal(t, models.PurchaseLine{ProductID: "p1", Qty: 3, PurchasePrice: decimal.NewFromInt(10)}, poster.req.Products[0])
}

func TestSubmit_ServerMessage(t *testing.T) {
	poster := &fakePoster{err: &apiclient.APIError{StatusCode: 400, Message: "Supplier is inactive"}}
	g := NewGateway(poster, time.Second)
	draft := testDraft()

	_, err := g.Submit(context.Background(), "tok", draft)

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, 400, subErr.StatusCode)
	assert.Equal(t, "Supplier is inactive", subErr.Error())
	assert.Equal(t, 1, poster.calls)
	assert.Equal(t, testDraft(), draft)
}

func TestSubmit_TransportFailureUsesGenericMessage(t *testing.T) {
	cause := errors.New("connection refused")
	poster := &fakePoster{err: cause}
	g := NewGateway(poster, time.Second)

	_, err := g.Submit(context.Background(), "tok", testDraft())

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, 0, subErr.StatusCode)
	assert.Equal(t, MsgSubmitFailed, subErr.Message)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, poster.calls)
}

func TestSubmit_Timeout(t *testing.T) {
	poster := &fakePoster{wait: true}
	g := NewGateway(poster, 20*time.Millisecond)

	_, err := g.Submit(context.Background(), "tok", testDraft())

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, poster.calls)
}
