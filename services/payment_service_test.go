package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"travel-app/dto"
	apperrors "travel-app/errors"
	"travel-app/models"
	"travel-app/repository/repotest"
	"travel-app/services/chapa"
	"travel-app/services/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	mu          sync.Mutex
	initCalls   []chapa.InitializeRequest
	verifyCalls []string
	initFn      func(chapa.InitializeRequest) (*chapa.InitializeResponse, error)
	verifyFn    func(string) (*chapa.VerifyResponse, error)
}

func (g *fakeGateway) Initialize(ctx context.Context, req chapa.InitializeRequest) (*chapa.InitializeResponse, error) {
	g.mu.Lock()
	g.initCalls = append(g.initCalls, req)
	g.mu.Unlock()
	return g.initFn(req)
}

func (g *fakeGateway) Verify(ctx context.Context, txRef string) (*chapa.VerifyResponse, error) {
	g.mu.Lock()
	g.verifyCalls = append(g.verifyCalls, txRef)
	g.mu.Unlock()
	return g.verifyFn(txRef)
}

type captureSender struct {
	mu    sync.Mutex
	calls [][2]string
}

func (c *captureSender) Send(address, details string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, [2]string{address, details})
}

func (c *captureSender) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

func checkoutOK(url string) func(chapa.InitializeRequest) (*chapa.InitializeResponse, error) {
	return func(chapa.InitializeRequest) (*chapa.InitializeResponse, error) {
		resp := &chapa.InitializeResponse{Status: "success", Raw: []byte(`{"status":"success"}`)}
		resp.Data = &struct {
			CheckoutURL string `json:"checkout_url"`
		}{CheckoutURL: url}
		return resp, nil
	}
}

func verifyResult(outer, inner string) func(string) (*chapa.VerifyResponse, error) {
	return func(tx string) (*chapa.VerifyResponse, error) {
		resp := &chapa.VerifyResponse{Status: outer, Raw: []byte(`{}`)}
		resp.Data = &struct {
			Status   string `json:"status"`
			TxRef    string `json:"tx_ref"`
			Currency string `json:"currency"`
		}{Status: inner, TxRef: tx}
		return resp, nil
	}
}

func validRequest() dto.InitiatePaymentRequest {
	return dto.InitiatePaymentRequest{UserID: 1, BookingReference: "BR-100", Amount: 150.00, Email: "guest@example.com"}
}

func newPaymentFixture(gw *fakeGateway) (*PaymentService, *repotest.Payments, *captureSender) {
	store := repotest.NewStore()
	payments := store.Payments()
	sender := &captureSender{}
	svc := NewPaymentService(PaymentConfig{Currency: "ETB"}, payments, gw, sender, logger.Nop{},
		WithTxRefGenerator(func() string { return "tx-fixed" }))
	return svc, payments, sender
}

func TestInitiateThenVerifyCompleted(t *testing.T) {
	gw := &fakeGateway{initFn: checkoutOK("https://pay/xyz"), verifyFn: verifyResult("success", "success")}
	svc, payments, sender := newPaymentFixture(gw)
	ctx := context.Background()

	res, err := svc.Initiate(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "https://pay/xyz", res.CheckoutURL)

	require.Len(t, gw.initCalls, 1)
	assert.Equal(t, chapa.InitializeRequest{
		Amount: "150.00", Currency: "ETB", Email: "guest@example.com",
		FirstName: "User", LastName: "Booking", TxRef: "tx-fixed",
	}, gw.initCalls[0])

	stored, err := payments.GetByID(ctx, res.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, stored.Status)
	require.NotNil(t, stored.TransactionID)
	assert.Equal(t, "tx-fixed", *stored.TransactionID)

	out, err := svc.Verify(ctx, res.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, out.Status)
	assert.Equal(t, []string{"tx-fixed"}, gw.verifyCalls)
	require.Equal(t, 1, sender.count())
	assert.Equal(t, "guest@example.com", sender.calls[0][0])
	assert.Contains(t, sender.calls[0][1], "BR-100")

	stored, _ = payments.GetByID(ctx, res.PaymentID)
	assert.Equal(t, models.PaymentStatusCompleted, stored.Status)
}

func TestInitiate_ValidationFailsBeforeSideEffects(t *testing.T) {
	gw := &fakeGateway{initFn: checkoutOK("https://pay/xyz")}
	svc, payments, _ := newPaymentFixture(gw)

	req := validRequest()
	req.Amount = 0
	req.Email = ""
	_, err := svc.Initiate(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatus(err))
	assert.Empty(t, gw.initCalls)

	_, err = payments.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrPaymentNotFound)
}

func TestInitiate_GatewayNon200MarksFailed(t *testing.T) {
	gw := &fakeGateway{initFn: func(chapa.InitializeRequest) (*chapa.InitializeResponse, error) {
		return nil, &apperrors.GatewayError{StatusCode: http.StatusBadRequest, Body: []byte(`{"message":"invalid currency"}`)}
	}}
	svc, payments, _ := newPaymentFixture(gw)

	_, err := svc.Initiate(context.Background(), validRequest())
	var gwErr *apperrors.GatewayError
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, http.StatusBadRequest, gwErr.StatusCode)

	stored, err := payments.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, stored.Status)
	assert.Nil(t, stored.TransactionID)
	assert.JSONEq(t, `{"message":"invalid currency"}`, string(stored.GatewayResponse))
}

func TestInitiate_TransportErrorMarksFailed(t *testing.T) {
	gw := &fakeGateway{initFn: func(chapa.InitializeRequest) (*chapa.InitializeResponse, error) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeTransport, "connection refused", nil)
	}}
	svc, payments, _ := newPaymentFixture(gw)

	_, err := svc.Initiate(context.Background(), validRequest())
	assert.Equal(t, http.StatusInternalServerError, apperrors.HTTPStatus(err))

	stored, _ := payments.GetByID(context.Background(), 1)
	assert.Equal(t, models.PaymentStatusFailed, stored.Status)
}

func TestInitiate_MissingCheckoutURLMarksFailed(t *testing.T) {
	gw := &fakeGateway{initFn: checkoutOK("")}
	svc, payments, _ := newPaymentFixture(gw)

	_, err := svc.Initiate(context.Background(), validRequest())
	assert.Equal(t, apperrors.ErrCodeTransport, apperrors.Code(err))

	stored, _ := payments.GetByID(context.Background(), 1)
	assert.Equal(t, models.PaymentStatusFailed, stored.Status)
}

func TestInitiate_PendingUntilGatewayResponds(t *testing.T) {
	gw := &fakeGateway{}
	svc, payments, _ := newPaymentFixture(gw)

	var during *models.Payment
	gw.initFn = func(req chapa.InitializeRequest) (*chapa.InitializeResponse, error) {
		p, err := payments.GetByID(context.Background(), 1)
		require.NoError(t, err)
		during = p
		return checkoutOK("https://pay/xyz")(req)
	}

	_, err := svc.Initiate(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, during)
	assert.Equal(t, models.PaymentStatusPending, during.Status)
	assert.Nil(t, during.TransactionID)
}

type failingTxStore struct {
	*repotest.Payments
}

func (failingTxStore) SetTransaction(context.Context, uint, string, []byte) error {
	return errors.New("db down")
}

func TestInitiate_StoreTransactionErrorMarksFailed(t *testing.T) {
	gw := &fakeGateway{initFn: checkoutOK("https://pay/xyz")}
	payments := repotest.NewStore().Payments()
	svc := NewPaymentService(PaymentConfig{Currency: "ETB"}, failingTxStore{payments}, gw, nil, logger.Nop{},
		WithTxRefGenerator(func() string { return "tx-fixed" }))

	res, err := svc.Initiate(context.Background(), validRequest())
	assert.EqualError(t, err, "db down")
	assert.Nil(t, res)

	stored, err := payments.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, stored.Status)
	assert.Nil(t, stored.TransactionID)
	assert.JSONEq(t, `{"status":"success"}`, string(stored.GatewayResponse))
}

func TestGet_OnlyOwner(t *testing.T) {
	gw := &fakeGateway{initFn: checkoutOK("https://pay/xyz")}
	svc, _, _ := newPaymentFixture(gw)
	ctx := context.Background()

	res, err := svc.Initiate(ctx, validRequest())
	require.NoError(t, err)

	p, err := svc.Get(ctx, res.PaymentID, 1)
	require.NoError(t, err)
	assert.Equal(t, "BR-100", p.BookingReference)

	_, err = svc.Get(ctx, res.PaymentID, 2)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.Get(ctx, 99, 1)
	assert.ErrorIs(t, err, apperrors.ErrPaymentNotFound)
}

func TestInitiate_RunsOnDetachedContext(t *testing.T) {
	var gwCtxErr error
	gw := &fakeGateway{}
	gw.initFn = checkoutOK("https://pay/xyz")
	svc, _, _ := newPaymentFixture(gw)
	svc.gateway = gatewayFunc(func(ctx context.Context) {
		gwCtxErr = ctx.Err()
	}, gw)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Initiate(ctx, validRequest())
	require.NoError(t, err)
	assert.NoError(t, gwCtxErr)
}

type ctxProbe struct {
	probe func(context.Context)
	next  *fakeGateway
}

func gatewayFunc(probe func(context.Context), next *fakeGateway) *ctxProbe {
	return &ctxProbe{probe: probe, next: next}
}

func (p *ctxProbe) Initialize(ctx context.Context, req chapa.InitializeRequest) (*chapa.InitializeResponse, error) {
	p.probe(ctx)
	return p.next.Initialize(ctx, req)
}

func (p *ctxProbe) Verify(ctx context.Context, txRef string) (*chapa.VerifyResponse, error) {
	p.probe(ctx)
	return p.next.Verify(ctx, txRef)
}

func TestVerify_Outcomes(t *testing.T) {
	tests := []struct {
		name  string
		outer string
		inner string
		want  models.PaymentStatus
	}{
		{"both success", "success", "success", models.PaymentStatusCompleted},
		{"inner pending", "success", "pending", models.PaymentStatusFailed},
		{"outer failed", "failed", "success", models.PaymentStatusFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{initFn: checkoutOK("https://pay/xyz"), verifyFn: verifyResult(tt.outer, tt.inner)}
			svc, _, sender := newPaymentFixture(gw)
			res, err := svc.Initiate(context.Background(), validRequest())
			require.NoError(t, err)

			out, err := svc.Verify(context.Background(), res.PaymentID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Status)
			if tt.want == models.PaymentStatusCompleted {
				assert.Equal(t, 1, sender.count())
			} else {
				assert.Equal(t, 0, sender.count())
			}
		})
	}
}

func TestVerify_NotFoundAndMissingTransaction(t *testing.T) {
	gw := &fakeGateway{initFn: func(chapa.InitializeRequest) (*chapa.InitializeResponse, error) {
		return nil, &apperrors.GatewayError{StatusCode: http.StatusUnauthorized, Body: []byte(`{}`)}
	}}
	svc, payments, _ := newPaymentFixture(gw)

	_, err := svc.Verify(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrPaymentNotFound)
	assert.Equal(t, http.StatusNotFound, apperrors.HTTPStatus(err))

	require.NoError(t, payments.Create(context.Background(), &models.Payment{UserID: 1, BookingReference: "BR-1", Amount: 10}))
	_, err = svc.Verify(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrTransactionMissing)
	assert.Equal(t, "Transaction ID missing", apperrors.Message(err))
	assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatus(err))
	assert.Empty(t, gw.verifyCalls)
}

func TestVerify_TerminalStatusIsNotReverified(t *testing.T) {
	gw := &fakeGateway{initFn: checkoutOK("https://pay/xyz"), verifyFn: verifyResult("success", "success")}
	svc, _, sender := newPaymentFixture(gw)
	res, err := svc.Initiate(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), res.PaymentID)
	require.NoError(t, err)

	gw.verifyFn = verifyResult("failed", "failed")
	out, err := svc.Verify(context.Background(), res.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, out.Status)
	assert.Len(t, gw.verifyCalls, 1)
	assert.Equal(t, 1, sender.count())
}

func TestVerify_TransportErrorMarksFailed(t *testing.T) {
	gw := &fakeGateway{
		initFn: checkoutOK("https://pay/xyz"),
		verifyFn: func(string) (*chapa.VerifyResponse, error) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeTransport, "chapa: decode verify response", nil)
		},
	}
	svc, payments, _ := newPaymentFixture(gw)
	res, err := svc.Initiate(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), res.PaymentID)
	assert.Equal(t, http.StatusInternalServerError, apperrors.HTTPStatus(err))

	stored, _ := payments.GetByID(context.Background(), res.PaymentID)
	assert.Equal(t, models.PaymentStatusFailed, stored.Status)
}

func TestVerify_ConcurrentCallsSettleOnce(t *testing.T) {
	gw := &fakeGateway{initFn: checkoutOK("https://pay/xyz"), verifyFn: verifyResult("success", "success")}
	svc, _, sender := newPaymentFixture(gw)
	res, err := svc.Initiate(context.Background(), validRequest())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := svc.Verify(context.Background(), res.PaymentID)
			assert.NoError(t, err)
			assert.Equal(t, models.PaymentStatusCompleted, out.Status)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, sender.count())
}

func TestExpireStalePayments(t *testing.T) {
	gw := &fakeGateway{initFn: checkoutOK("https://pay/xyz")}
	svc, payments, _ := newPaymentFixture(gw)
	ctx := context.Background()

	stale := &models.Payment{UserID: 1, BookingReference: "BR-1", Amount: 10}
	require.NoError(t, payments.Create(ctx, stale))
	payments.Backdate(stale.ID, 2*time.Hour)

	res, err := svc.Initiate(ctx, validRequest())
	require.NoError(t, err)
	payments.Backdate(res.PaymentID, 2*time.Hour)

	n, err := svc.ExpireStalePayments(ctx, 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, _ := payments.GetByID(ctx, stale.ID)
	assert.Equal(t, models.PaymentStatusFailed, got.Status)
	got, _ = payments.GetByID(ctx, res.PaymentID)
	assert.Equal(t, models.PaymentStatusPending, got.Status)
}
