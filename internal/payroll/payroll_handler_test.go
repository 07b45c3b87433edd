package payroll_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"hr-admin/internal/payroll"
	payrollerrors "hr-admin/internal/payroll/errors"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  json.RawMessage `json:"meta"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakePayrollService struct {
	generateFn      func(ctx context.Context, req payroll.GenerateRequest) (payroll.SalaryRecordResponse, error)
	generateBatchFn func(ctx context.Context, req payroll.GenerateBatchRequest) (payroll.BatchResultResponse, error)
	getAllFn        func(ctx context.Context, req payroll.RecordListRequest) ([]payroll.SalaryRecordResponse, error)
	getByIDFn       func(ctx context.Context, id string) (payroll.SalaryRecordResponse, error)
	updateFn        func(ctx context.Context, id string, req payroll.UpdateRequest) (payroll.SalaryRecordResponse, error)
	markAsPaidFn    func(ctx context.Context, id string) (payroll.SalaryRecordResponse, error)
}

func (f *fakePayrollService) Generate(ctx context.Context, req payroll.GenerateRequest) (payroll.SalaryRecordResponse, error) {
	return f.generateFn(ctx, req)
}
func (f *fakePayrollService) GenerateBatch(ctx context.Context, req payroll.GenerateBatchRequest) (payroll.BatchResultResponse, error) {
	return f.generateBatchFn(ctx, req)
}
func (f *fakePayrollService) GetAll(ctx context.Context, req payroll.RecordListRequest) ([]payroll.SalaryRecordResponse, error) {
	return f.getAllFn(ctx, req)
}
func (f *fakePayrollService) GetByID(ctx context.Context, id string) (payroll.SalaryRecordResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakePayrollService) Update(ctx context.Context, id string, req payroll.UpdateRequest) (payroll.SalaryRecordResponse, error) {
	return f.updateFn(ctx, id, req)
}
func (f *fakePayrollService) MarkAsPaid(ctx context.Context, id string) (payroll.SalaryRecordResponse, error) {
	return f.markAsPaidFn(ctx, id)
}

func newTestContext(t *testing.T) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return w, c
}

func TestPayrollHandler_Generate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		employeeID := uuid.New().String()
		svc := &fakePayrollService{
			generateFn: func(ctx context.Context, req payroll.GenerateRequest) (payroll.SalaryRecordResponse, error) {
				assert.Equal(t, employeeID, req.EmployeeID)
				assert.Equal(t, 2026, req.Year)
				assert.Equal(t, 7, req.Month)
				return payroll.SalaryRecordResponse{
					ID:            uuid.New().String(),
					EmployeeID:    req.EmployeeID,
					Year:          req.Year,
					Month:         req.Month,
					BasicSalary:   "8000.00",
					GrossSalary:   "9500.00",
					Tax:           "240.00",
					NetSalary:     "9260.00",
					PaymentStatus: payroll.PaymentStatusPending,
				}, nil
			},
		}

		h := payroll.NewHandler(svc)
		w, c := newTestContext(t)
		body := `{"employee_id":"` + employeeID + `","year":2026,"month":7,"overtime_hours":"4","bonus":"500"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/payrolls/generate", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Generate(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got payroll.SalaryRecordResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, employeeID, got.EmployeeID)
		assert.Equal(t, "9260.00", got.NetSalary)
		assert.Equal(t, payroll.PaymentStatusPending, got.PaymentStatus)
	})

	t.Run("missing body fields yield validation error", func(t *testing.T) {
		h := payroll.NewHandler(&fakePayrollService{})
		w, c := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodPost, "/payrolls/generate", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Generate(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("duplicate period returns conflict", func(t *testing.T) {
		svc := &fakePayrollService{
			generateFn: func(ctx context.Context, req payroll.GenerateRequest) (payroll.SalaryRecordResponse, error) {
				return payroll.SalaryRecordResponse{}, payrollerrors.ErrRecordExists
			},
		}
		h := payroll.NewHandler(svc)
		w, c := newTestContext(t)
		body := `{"employee_id":"` + uuid.New().String() + `","year":2026,"month":7}`
		c.Request = httptest.NewRequest(http.MethodPost, "/payrolls/generate", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Generate(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "CONFLICT", env.Error.Code)
		assert.Equal(t, "salary record already exists for this period", env.Error.Message)
	})

	t.Run("unexpected service error is masked", func(t *testing.T) {
		svc := &fakePayrollService{
			generateFn: func(ctx context.Context, req payroll.GenerateRequest) (payroll.SalaryRecordResponse, error) {
				return payroll.SalaryRecordResponse{}, errors.New("pq: connection reset")
			},
		}
		h := payroll.NewHandler(svc)
		w, c := newTestContext(t)
		body := `{"employee_id":"` + uuid.New().String() + `","year":2026,"month":7}`
		c.Request = httptest.NewRequest(http.MethodPost, "/payrolls/generate", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Generate(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
		assert.Equal(t, "An unexpected error occurred", env.Error.Message)
	})
}

func TestPayrollHandler_GenerateBatch(t *testing.T) {
	t.Run("returns partial result with failures", func(t *testing.T) {
		okID := uuid.New().String()
		dupID := uuid.New().String()
		svc := &fakePayrollService{
			generateBatchFn: func(ctx context.Context, req payroll.GenerateBatchRequest) (payroll.BatchResultResponse, error) {
				assert.ElementsMatch(t, []string{okID, dupID}, req.EmployeeIDs)
				return payroll.BatchResultResponse{
					Success: []payroll.SalaryRecordResponse{
						{ID: uuid.New().String(), EmployeeID: okID, Year: req.Year, Month: req.Month},
					},
					Failed: []payroll.BatchFailure{
						{EmployeeID: dupID, Reason: "already exists"},
					},
				}, nil
			},
		}

		h := payroll.NewHandler(svc)
		w, c := newTestContext(t)
		body := `{"year":2026,"month":7,"employee_ids":["` + okID + `","` + dupID + `"]}`
		c.Request = httptest.NewRequest(http.MethodPost, "/payrolls/generate-batch", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.GenerateBatch(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got payroll.BatchResultResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got.Success, 1)
		assert.Len(t, got.Failed, 1)
		assert.Equal(t, "already exists", got.Failed[0].Reason)
	})

	t.Run("empty employee list is rejected", func(t *testing.T) {
		svc := &fakePayrollService{
			generateBatchFn: func(ctx context.Context, req payroll.GenerateBatchRequest) (payroll.BatchResultResponse, error) {
				return payroll.BatchResultResponse{}, payrollerrors.ErrEmptyBatch
			},
		}
		h := payroll.NewHandler(svc)
		w, c := newTestContext(t)
		body := `{"year":2026,"month":7,"employee_ids":[]}`
		c.Request = httptest.NewRequest(http.MethodPost, "/payrolls/generate-batch", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.GenerateBatch(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})
}

func TestPayrollHandler_GetAll(t *testing.T) {
	t.Run("paginates and reports meta", func(t *testing.T) {
		records := make([]payroll.SalaryRecordResponse, 0, 3)
		for i := 0; i < 3; i++ {
			records = append(records, payroll.SalaryRecordResponse{
				ID:         uuid.New().String(),
				EmployeeID: uuid.New().String(),
				Year:       2026,
				Month:      7,
			})
		}
		svc := &fakePayrollService{
			getAllFn: func(ctx context.Context, req payroll.RecordListRequest) ([]payroll.SalaryRecordResponse, error) {
				assert.Equal(t, 2026, req.Year)
				assert.Equal(t, 7, req.Month)
				return records, nil
			},
		}

		h := payroll.NewHandler(svc)
		w, c := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodGet, "/payrolls?year=2026&month=7&page=2&page_size=2", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got []payroll.SalaryRecordResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got, 1)
		assert.Equal(t, records[2].ID, got[0].ID)

		var meta struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"totalPages"`
			Page       int   `json:"page"`
			PageSize   int   `json:"pageSize"`
		}
		assert.NoError(t, json.Unmarshal(env.Meta, &meta))
		assert.Equal(t, int64(3), meta.Total)
		assert.Equal(t, 2, meta.TotalPages)
		assert.Equal(t, 2, meta.Page)
		assert.Equal(t, 2, meta.PageSize)
	})
}

func TestPayrollHandler_GetByID(t *testing.T) {
	t.Run("unknown record returns not found", func(t *testing.T) {
		svc := &fakePayrollService{
			getByIDFn: func(ctx context.Context, id string) (payroll.SalaryRecordResponse, error) {
				return payroll.SalaryRecordResponse{}, payrollerrors.ErrRecordNotFound
			},
		}
		h := payroll.NewHandler(svc)
		w, c := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodGet, "/payrolls/"+uuid.New().String(), nil)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

		h.GetByID(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
		assert.Equal(t, "salary record not found", env.Error.Message)
	})
}

func TestPayrollHandler_MarkAsPaid(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		recordID := uuid.New().String()
		svc := &fakePayrollService{
			markAsPaidFn: func(ctx context.Context, id string) (payroll.SalaryRecordResponse, error) {
				assert.Equal(t, recordID, id)
				return payroll.SalaryRecordResponse{ID: id, PaymentStatus: payroll.PaymentStatusPaid}, nil
			},
		}
		h := payroll.NewHandler(svc)
		w, c := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodPost, "/payrolls/"+recordID+"/pay", nil)
		c.Params = gin.Params{{Key: "id", Value: recordID}}

		h.MarkAsPaid(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got payroll.SalaryRecordResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, payroll.PaymentStatusPaid, got.PaymentStatus)
	})

	t.Run("second call returns conflict", func(t *testing.T) {
		svc := &fakePayrollService{
			markAsPaidFn: func(ctx context.Context, id string) (payroll.SalaryRecordResponse, error) {
				return payroll.SalaryRecordResponse{}, payrollerrors.ErrAlreadyPaid
			},
		}
		h := payroll.NewHandler(svc)
		w, c := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodPost, "/payrolls/"+uuid.New().String()+"/pay", nil)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

		h.MarkAsPaid(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})
}
