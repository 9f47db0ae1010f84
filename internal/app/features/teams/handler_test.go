package teams_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campushub/unihub/internal/app/features/teams"
	"github.com/campushub/unihub/internal/app/ledger"
	"github.com/campushub/unihub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const activityID = "66b2f9a11c9d440000a1b2c3"

func newTestHandler(t *testing.T) (*teams.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	handler := teams.NewHandler(db, ledger.New(db, logger), logger)
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures
}

func TestCreate_Success(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := testutil.JSONRequest(t, "POST", "/add/new-team", map[string]string{
		"activityId": activityID,
		"email":      "nadia@example.com",
		"teamName":   "Team Phoenix",
		"title":      "Robotics entry",
	})
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)

	db := fixtures.DB()
	var team struct {
		TeamName string `bson:"team_name"`
	}
	if err := db.Collection("teams").FindOne(ctx, bson.M{"email": "nadia@example.com"}).Decode(&team); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if team.TeamName != "Team Phoenix" {
		t.Errorf("TeamName: got %q", team.TeamName)
	}

	// The creator's commitment lands alongside the team.
	n, err := db.Collection("commitments").CountDocuments(ctx, bson.M{
		"email": "nadia@example.com", "activity_id": activityID,
	})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("creator commitments: got %d, want 1", n)
	}
}

func TestCreate_DuplicateConflicts(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateTeam(ctx, "Team Phoenix", "nadia@example.com", activityID)

	req := testutil.JSONRequest(t, "POST", "/add/new-team", map[string]string{
		"activityId": activityID,
		"email":      "NADIA@example.com",
		"teamName":   "Second Attempt",
	})
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	testutil.AssertStatus(t, rec, http.StatusConflict)
	var body struct {
		Exists bool `json:"exists"`
	}
	testutil.DecodeJSON(t, rec, &body)
	if !body.Exists {
		t.Errorf("expected exists flag, got %s", rec.Body.String())
	}
}

func TestCreate_MissingFields(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.JSONRequest(t, "POST", "/add/new-team", map[string]string{
		"teamName": "No Creator",
	})
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	testutil.AssertStatus(t, rec, http.StatusUnprocessableEntity)
}

func TestListByActivity(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateTeam(ctx, "Team Phoenix", "nadia@example.com", activityID)
	fixtures.CreateTeam(ctx, "Team Orion", "rumi@example.com", activityID)
	fixtures.CreateTeam(ctx, "Elsewhere", "other@example.com", "66b2f9a11c9d440000d4e5f6")

	rec := httptest.NewRecorder()
	handler.ListByActivity(rec, httptest.NewRequest("GET", "/get/all-teams?activityId="+activityID, nil))

	testutil.AssertStatus(t, rec, http.StatusOK)
	var body []struct {
		TeamName string `json:"teamName"`
	}
	testutil.DecodeJSON(t, rec, &body)
	if len(body) != 2 {
		t.Fatalf("teams: got %d, want 2", len(body))
	}
}

func TestListByActivity_EmptyIsList(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ListByActivity(rec, httptest.NewRequest("GET", "/get/all-teams?activityId="+activityID, nil))

	testutil.AssertStatus(t, rec, http.StatusOK)
	// Must be [] rather than null.
	if got := rec.Body.String(); got != "[]\n" && got != "[]" {
		t.Errorf("empty listing: got %q, want []", got)
	}
}

func TestDetails(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	team := fixtures.CreateTeam(ctx, "Team Phoenix", "nadia@example.com", activityID)

	rec := httptest.NewRecorder()
	handler.Details(rec, httptest.NewRequest("GET", "/team/details?teamId="+team.ID.Hex(), nil))

	testutil.AssertStatus(t, rec, http.StatusOK)
	var body struct {
		TeamName string `json:"teamName"`
	}
	testutil.DecodeJSON(t, rec, &body)
	if body.TeamName != "Team Phoenix" {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestDetails_MalformedID(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.Details(rec, httptest.NewRequest("GET", "/team/details?teamId=zzz", nil))

	testutil.AssertStatus(t, rec, http.StatusUnprocessableEntity)
}

func TestDetails_NotFound(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.Details(rec, httptest.NewRequest("GET", "/team/details?teamId=66b2f9a11c9d440000a1b2c3", nil))

	testutil.AssertStatus(t, rec, http.StatusNotFound)
}

func TestUpdateDetails_NotFound(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.JSONRequest(t, "POST", "/update/team-details", map[string]string{
		"teamId":          "66b2f9a11c9d440000a1b2c3",
		"updatedTeamName": "Team Firebird",
		"updatedTitle":    "New Title",
	})
	rec := httptest.NewRecorder()
	handler.UpdateDetails(rec, req)

	testutil.AssertStatus(t, rec, http.StatusNotFound)
}

func TestAddResource_ReturnsIdentifier(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	team := fixtures.CreateTeam(ctx, "Team Phoenix", "nadia@example.com", activityID)

	req := testutil.JSONRequest(t, "POST", "/add/team-resource", map[string]string{
		"teamId": team.ID.Hex(),
		"title":  "Syllabus",
		"link":   "http://x",
	})
	rec := httptest.NewRecorder()
	handler.AddResource(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	var body struct {
		Success    bool   `json:"success"`
		Identifier string `json:"identifier"`
	}
	testutil.DecodeJSON(t, rec, &body)
	if !body.Success || body.Identifier == "" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	// Second add gets a different identifier.
	req = testutil.JSONRequest(t, "POST", "/add/team-resource", map[string]string{
		"teamId": team.ID.Hex(),
		"title":  "Notes",
		"link":   "http://y",
	})
	rec2 := httptest.NewRecorder()
	handler.AddResource(rec2, req)

	var body2 struct {
		Identifier string `json:"identifier"`
	}
	testutil.DecodeJSON(t, rec2, &body2)
	if body2.Identifier == body.Identifier {
		t.Error("resource identifiers are not distinct")
	}
}

func TestAddResource_TeamNotFound(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.JSONRequest(t, "POST", "/add/team-resource", map[string]string{
		"teamId": "66b2f9a11c9d440000a1b2c3",
		"title":  "Syllabus",
		"link":   "http://x",
	})
	rec := httptest.NewRecorder()
	handler.AddResource(rec, req)

	testutil.AssertStatus(t, rec, http.StatusNotFound)
}

func TestUpdateResource_UnknownIdentifier(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	team := fixtures.CreateTeam(ctx, "Team Phoenix", "nadia@example.com", activityID)

	req := testutil.JSONRequest(t, "POST", "/update/team-resource", map[string]string{
		"teamId":     team.ID.Hex(),
		"identifier": "no-such-resource",
		"title":      "Nope",
		"link":       "http://n",
	})
	rec := httptest.NewRecorder()
	handler.UpdateResource(rec, req)

	testutil.AssertStatus(t, rec, http.StatusNotFound)
}
