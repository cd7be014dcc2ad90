package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rvanheerden/go-autoquote/internal/core"
	transporthttp "github.com/rvanheerden/go-autoquote/internal/http"
	"github.com/rvanheerden/go-autoquote/internal/http/handlers"
	"github.com/rvanheerden/go-autoquote/internal/scan"
)

// memRepo is an in-memory core.RecordRepo for handler tests.
type memRepo struct {
	rec     core.ApplicantRecord
	savedAt time.Time
	stored  bool
}

func (m *memRepo) Load(ctx context.Context) (core.ApplicantRecord, time.Time, error) {
	if !m.stored {
		return core.ApplicantRecord{}, time.Time{}, core.ErrNotFound
	}
	return m.rec, m.savedAt, nil
}

func (m *memRepo) Save(ctx context.Context, rec core.ApplicantRecord, savedAt time.Time) error {
	m.rec, m.savedAt, m.stored = rec, savedAt, true
	return nil
}

func (m *memRepo) Clear(ctx context.Context) error {
	m.rec, m.savedAt, m.stored = core.ApplicantRecord{}, time.Time{}, false
	return nil
}

func (m *memRepo) Ping(ctx context.Context) error { return nil }

func newTestAPI(t *testing.T) http.Handler {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	intake := core.NewIntakeService(&memRepo{}, log)
	quotes := core.NewQuoteService(intake)
	proc := scan.NewProcessor(time.Millisecond)

	return transporthttp.NewRouter(transporthttp.Deps{
		Mounts: []handlers.Mountable{
			handlers.NewIntakeHandler(intake, log),
			handlers.NewQuoteHandler(quotes, log),
			handlers.NewPaymentHandler(intake, log),
			handlers.NewScanHandler(proc, intake, log),
			handlers.NewSuggestHandler(intake, log),
		},
	})
}

func do(t *testing.T, api http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	api.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestIntake_GetReturnsDefaults(t *testing.T) {
	api := newTestAPI(t)

	rr := do(t, api, http.MethodGet, "/intake/", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q, want JSON", ct)
	}

	rec := decode[core.ApplicantRecord](t, rr)
	if rec != core.DefaultRecord() {
		t.Errorf("record = %+v, want defaults", rec)
	}
}

func TestIntake_PatchAndGetRoundTrip(t *testing.T) {
	api := newTestAPI(t)

	rr := do(t, api, http.MethodPatch, "/intake/", `{"firstName":"Jane","collision":false}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("patch status = %d, want 200: %s", rr.Code, rr.Body)
	}

	rec := decode[core.ApplicantRecord](t, do(t, api, http.MethodGet, "/intake/", ""))
	if rec.FirstName != "Jane" || rec.Collision {
		t.Errorf("record = %+v, want patched fields", rec)
	}
}

func TestIntake_PatchUnknownFieldRejected(t *testing.T) {
	api := newTestAPI(t)

	rr := do(t, api, http.MethodPatch, "/intake/", `{"favourite":"blue"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestIntake_PatchBadJSON(t *testing.T) {
	api := newTestAPI(t)

	rr := do(t, api, http.MethodPatch, "/intake/", `{`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestIntake_PutField(t *testing.T) {
	api := newTestAPI(t)

	rr := do(t, api, http.MethodPut, "/intake/email", `{"value":"jane@example.com"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body)
	}
	rec := decode[core.ApplicantRecord](t, rr)
	if rec.Email != "jane@example.com" {
		t.Errorf("Email = %q", rec.Email)
	}
}

func TestIntake_PutFieldMistypedValue(t *testing.T) {
	api := newTestAPI(t)

	rr := do(t, api, http.MethodPut, "/intake/collision", `{"value":"yes"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for string into bool field", rr.Code)
	}
}

func TestIntake_DeleteResets(t *testing.T) {
	api := newTestAPI(t)

	do(t, api, http.MethodPatch, "/intake/", `{"firstName":"Jane"}`)
	rr := do(t, api, http.MethodDelete, "/intake/", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	rec := decode[core.ApplicantRecord](t, do(t, api, http.MethodGet, "/intake/", ""))
	if rec != core.DefaultRecord() {
		t.Errorf("record after delete = %+v, want defaults", rec)
	}
}

func TestIntake_Step(t *testing.T) {
	api := newTestAPI(t)

	rr := do(t, api, http.MethodGet, "/intake/step?screen=coverage", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	resp := decode[map[string]any](t, rr)
	if resp["screen"] != "coverage" || resp["step"] != float64(3) {
		t.Errorf("resp = %v, want coverage/3", resp)
	}
}

func TestQuote_SummaryForDefaults(t *testing.T) {
	api := newTestAPI(t)

	rr := do(t, api, http.MethodGet, "/quote", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	summary := decode[core.QuoteSummary](t, rr)
	if summary.DriverRisk.RiskLevel != core.RiskTierLow {
		t.Errorf("driver tier = %q, want low", summary.DriverRisk.RiskLevel)
	}
	if summary.Premium.Annual != 1656 { // 1200 * 1.2 * 1.15 for the default selection
		t.Errorf("Annual = %d, want 1656", summary.Premium.Annual)
	}
	if summary.Advice.Coverage.Liability != "2000000" {
		t.Errorf("suggested liability = %q, want 2000000", summary.Advice.Coverage.Liability)
	}
}

func TestPayment_Estimate(t *testing.T) {
	api := newTestAPI(t)

	rr := do(t, api, http.MethodGet, "/payment/estimate", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	resp := decode[map[string]int](t, rr)
	if resp["annual"] != 2060 { // default record through the payment formula
		t.Errorf("annual = %d, want 2060", resp["annual"])
	}
}

func TestPayment_Submit(t *testing.T) {
	api := newTestAPI(t)

	rr := do(t, api, http.MethodPost, "/payment/", `{"method":"card"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body)
	}
	resp := decode[map[string]any](t, rr)
	if resp["status"] != "accepted" || resp["method"] != "card" {
		t.Errorf("resp = %v", resp)
	}
	if ref, _ := resp["reference"].(string); ref == "" {
		t.Error("reference should be generated")
	}
}

func TestPayment_SubmitUnknownMethod(t *testing.T) {
	api := newTestAPI(t)

	rr := do(t, api, http.MethodPost, "/payment/", `{"method":"crypto"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestScan_LicenseAppliesToRecord(t *testing.T) {
	api := newTestAPI(t)

	rr := do(t, api, http.MethodPost, "/scan/license", `{"filename":"drivers-license.jpg"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body)
	}
	resp := decode[map[string]any](t, rr)
	if resp["applied"] != true {
		t.Fatalf("applied = %v, want true", resp["applied"])
	}

	rec := decode[core.ApplicantRecord](t, do(t, api, http.MethodGet, "/intake/", ""))
	if rec.FirstName != "John" || rec.LicenseNumber != "123456789" {
		t.Errorf("record = %+v, want scanned fields merged", rec)
	}
}

func TestScan_MissingFilename(t *testing.T) {
	api := newTestAPI(t)

	rr := do(t, api, http.MethodPost, "/scan/license", `{}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestScan_VINLookupAppliesToRecord(t *testing.T) {
	api := newTestAPI(t)

	rr := do(t, api, http.MethodPost, "/vin-lookup", `{"vin":"4T1B11HK0JU705506"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body)
	}

	rec := decode[core.ApplicantRecord](t, do(t, api, http.MethodGet, "/intake/", ""))
	if rec.Year != "2023" || rec.Make != "Toyota" {
		t.Errorf("record = %+v, want decoded vehicle merged", rec)
	}
}

func TestScan_VINLookupRejectsBadLength(t *testing.T) {
	api := newTestAPI(t)

	rr := do(t, api, http.MethodPost, "/vin-lookup", `{"vin":"SHORT"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestSuggest(t *testing.T) {
	api := newTestAPI(t)

	rr := do(t, api, http.MethodGet, "/suggest?field=phone&value=4165550199", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	resp := decode[struct {
		Field       string `json:"field"`
		Suggestions []struct {
			Value string `json:"value"`
		} `json:"suggestions"`
	}](t, rr)
	if len(resp.Suggestions) != 1 || resp.Suggestions[0].Value != "(416) 555-0199" {
		t.Errorf("suggestions = %+v", resp.Suggestions)
	}
}

func TestSuggest_MissingField(t *testing.T) {
	api := newTestAPI(t)

	rr := do(t, api, http.MethodGet, "/suggest", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestPredict(t *testing.T) {
	api := newTestAPI(t)

	do(t, api, http.MethodPatch, "/intake/", `{"firstName":"Jane","lastName":"Doe"}`)

	rr := do(t, api, http.MethodGet, "/predict", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	resp := decode[struct {
		Predictions map[string]struct {
			Value string `json:"value"`
		} `json:"predictions"`
	}](t, rr)
	if resp.Predictions["email"].Value != "jane.doe@example.com" {
		t.Errorf("email prediction = %+v", resp.Predictions["email"])
	}
}
