package students_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campushub/unihub/internal/app/features/students"
	"github.com/campushub/unihub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*students.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := students.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures
}

func TestRegister_Success(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := testutil.JSONRequest(t, "POST", "/create/student", map[string]string{
		"name":            "Tanvir Ahmed",
		"email":           "Tanvir@Example.com",
		"studentId":       "201914055",
		"department":      "CSE",
		"selectedSection": "A",
	})
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	var body struct {
		Success bool `json:"success"`
	}
	testutil.DecodeJSON(t, rec, &body)
	if !body.Success {
		t.Errorf("expected success, got %s", rec.Body.String())
	}

	var st struct {
		Name  string `bson:"name"`
		Email string `bson:"email"`
	}
	err := fixtures.DB().Collection("students").FindOne(ctx, bson.M{"email": "tanvir@example.com"}).Decode(&st)
	if err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if st.Name != "Tanvir Ahmed" {
		t.Errorf("Name: got %q", st.Name)
	}
}

func TestRegister_AlreadyExists(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateStudent(ctx, "Tanvir Ahmed", "tanvir@example.com", "201914055", "A")

	req := testutil.JSONRequest(t, "POST", "/create/student", map[string]string{
		"name":  "Imposter",
		"email": "TANVIR@example.com",
	})
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	var body struct {
		AlreadyExists bool `json:"alreadyExists"`
	}
	testutil.DecodeJSON(t, rec, &body)
	if !body.AlreadyExists {
		t.Errorf("expected alreadyExists, got %s", rec.Body.String())
	}

	// The stored record is untouched.
	var st struct {
		Name string `bson:"name"`
	}
	if err := fixtures.DB().Collection("students").FindOne(ctx, bson.M{"email": "tanvir@example.com"}).Decode(&st); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if st.Name != "Tanvir Ahmed" {
		t.Errorf("duplicate registration mutated the record: %q", st.Name)
	}
}

func TestRegister_MissingEmail(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.JSONRequest(t, "POST", "/create/student", map[string]string{"name": "No Email"})
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	testutil.AssertStatus(t, rec, http.StatusUnprocessableEntity)
}

func TestInfo(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateStudent(ctx, "Tanvir Ahmed", "tanvir@example.com", "201914055", "A")

	rec := httptest.NewRecorder()
	handler.Info(rec, httptest.NewRequest("GET", "/student/info?email=tanvir@example.com", nil))

	testutil.AssertStatus(t, rec, http.StatusOK)
	var body struct {
		Name            string `json:"name"`
		SelectedSection string `json:"selectedSection"`
	}
	testutil.DecodeJSON(t, rec, &body)
	if body.Name != "Tanvir Ahmed" || body.SelectedSection != "A" {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestInfo_NotFound(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.Info(rec, httptest.NewRequest("GET", "/student/info?email=nobody@example.com", nil))

	testutil.AssertStatus(t, rec, http.StatusNotFound)
}

func TestUpdateSection(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	st := fixtures.CreateStudent(ctx, "Tanvir Ahmed", "tanvir@example.com", "201914055", "A")

	req := testutil.JSONRequest(t, "POST", "/update/section", map[string]string{
		"id":              st.ID.Hex(),
		"selectedSection": "B",
	})
	rec := httptest.NewRecorder()
	handler.UpdateSection(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)

	var got struct {
		SelectedSection string `bson:"selected_section"`
	}
	if err := fixtures.DB().Collection("students").FindOne(ctx, bson.M{"_id": st.ID}).Decode(&got); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if got.SelectedSection != "B" {
		t.Errorf("section: got %q, want %q", got.SelectedSection, "B")
	}
}

func TestUpdateSection_MalformedID(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.JSONRequest(t, "POST", "/update/section", map[string]string{
		"id":              "not-a-hex-id",
		"selectedSection": "B",
	})
	rec := httptest.NewRecorder()
	handler.UpdateSection(rec, req)

	testutil.AssertStatus(t, rec, http.StatusUnprocessableEntity)
}

func TestUpdateSection_UnknownStudent(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.JSONRequest(t, "POST", "/update/section", map[string]string{
		"id":              "66b2f9a11c9d440000a1b2c3",
		"selectedSection": "B",
	})
	rec := httptest.NewRecorder()
	handler.UpdateSection(rec, req)

	testutil.AssertStatus(t, rec, http.StatusNotFound)
}

func TestRequestCR_FirstComeWins(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.JSONRequest(t, "POST", "/request/CR", map[string]string{
		"name":    "Nadia Islam",
		"email":   "nadia@example.com",
		"section": "A",
	})
	rec := httptest.NewRecorder()
	handler.RequestCR(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	var first struct {
		Success bool `json:"success"`
	}
	testutil.DecodeJSON(t, rec, &first)
	if !first.Success {
		t.Fatalf("expected success, got %s", rec.Body.String())
	}

	// A later requester for the same section sees the holder and status.
	req = testutil.JSONRequest(t, "POST", "/request/CR", map[string]string{
		"name":    "Tanvir Ahmed",
		"email":   "tanvir@example.com",
		"section": "A",
	})
	rec = httptest.NewRecorder()
	handler.RequestCR(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	var second struct {
		Status string `json:"status"`
		Name   string `json:"name"`
	}
	testutil.DecodeJSON(t, rec, &second)
	if second.Name != "Nadia Islam" || second.Status == "" {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestRequestCR_MissingSection(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.JSONRequest(t, "POST", "/request/CR", map[string]string{
		"name":  "Nadia Islam",
		"email": "nadia@example.com",
	})
	rec := httptest.NewRecorder()
	handler.RequestCR(rec, req)

	testutil.AssertStatus(t, rec, http.StatusUnprocessableEntity)
}

func TestCRStatus_NotFound(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.CRStatus(rec, httptest.NewRequest("GET", "/cr/status?email=nobody@example.com", nil))

	testutil.AssertStatus(t, rec, http.StatusNotFound)
}
