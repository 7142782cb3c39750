package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/sweatcrew/backend/internal/models"
)

func TestCreateGroup(t *testing.T) {
	t.Run("creates group with owner as first participant", func(t *testing.T) {
		env := setupTestEnv(t)

		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/groups", map[string]any{
			"name":          "100K Challenge",
			"description":   "run 100km together",
			"goalRep":       100,
			"tags":          []string{"run"},
			"ownerNickname": "alice",
			"ownerPassword": "alice-password",
		}, nil)
		assertStatus(t, resp, http.StatusCreated)

		data := dataMap(t, decodeJSONMap(t, resp))
		if data["name"] != "100K Challenge" {
			t.Errorf("expected name '100K Challenge', got %v", data["name"])
		}

		participants, _ := data["participants"].([]any)
		if len(participants) != 1 {
			t.Fatalf("expected 1 participant, got %d", len(participants))
		}
		owner, _ := data["owner"].(map[string]any)
		if owner["nickname"] != "alice" {
			t.Errorf("expected owner nickname alice, got %v", owner["nickname"])
		}
		first, _ := participants[0].(map[string]any)
		if first["id"] != owner["id"] {
			t.Errorf("expected the owner to be the first participant, got %v vs %v", first["id"], owner["id"])
		}

		tags, _ := data["tags"].([]any)
		if len(tags) != 1 || tags[0] != "run" {
			t.Errorf("expected tags [run], got %v", tags)
		}
		if likeCount, _ := data["likeCount"].(float64); likeCount != 0 {
			t.Errorf("expected likeCount 0, got %v", data["likeCount"])
		}
		badges, _ := data["badges"].([]any)
		if len(badges) != 0 {
			t.Errorf("expected no badges on a fresh group, got %v", badges)
		}

		var user models.User
		if err := env.db.First(&user, "nickname = ?", "alice").Error; err != nil {
			t.Fatalf("expected owner user row to exist: %v", err)
		}
		if user.PasswordHash == "alice-password" {
			t.Error("expected password to be stored hashed")
		}
	})

	t.Run("rejects invalid payloads", func(t *testing.T) {
		env := setupTestEnv(t)

		cases := []struct {
			name    string
			payload map[string]any
		}{
			{"missing name", map[string]any{"ownerNickname": "alice", "ownerPassword": "alice-password"}},
			{"missing owner nickname", map[string]any{"name": "g", "ownerPassword": "alice-password"}},
			{"short password", map[string]any{"name": "g", "ownerNickname": "alice", "ownerPassword": "short"}},
			{"negative goal", map[string]any{"name": "g", "ownerNickname": "alice", "ownerPassword": "alice-password", "goalRep": -1}},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				resp := performJSONRequest(t, env.app, http.MethodPost, "/api/groups", tc.payload, nil)
				assertStatus(t, resp, http.StatusBadRequest)
			})
		}
	})

	t.Run("reusing a nickname requires the original password", func(t *testing.T) {
		env := setupTestEnv(t)
		createTestGroup(t, env, "first", "alice", "alice-password", nil)

		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/groups", map[string]any{
			"name":          "second",
			"ownerNickname": "alice",
			"ownerPassword": "wrong-password",
		}, nil)
		assertStatus(t, resp, http.StatusUnauthorized)
		assertEnvelopeError(t, decodeJSONMap(t, resp), "wrong password")
	})
}

func TestGetGroup(t *testing.T) {
	env := setupTestEnv(t)
	groupID := createTestGroup(t, env, "morning runners", "alice", "alice-password", []string{"run", "5am"})

	t.Run("returns full detail", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodGet, "/api/groups/"+groupID.String(), nil, nil)
		assertStatus(t, resp, http.StatusOK)

		data := dataMap(t, decodeJSONMap(t, resp))
		if data["id"] != groupID.String() {
			t.Errorf("expected id %s, got %v", groupID, data["id"])
		}
		tags, _ := data["tags"].([]any)
		if len(tags) != 2 {
			t.Errorf("expected 2 tags, got %v", tags)
		}
	})

	t.Run("unknown group returns 404", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodGet, "/api/groups/00000000-0000-0000-0000-000000000001", nil, nil)
		assertStatus(t, resp, http.StatusNotFound)
		assertEnvelopeError(t, decodeJSONMap(t, resp), "group not found")
	})

	t.Run("malformed id returns 400", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodGet, "/api/groups/not-a-uuid", nil, nil)
		assertStatus(t, resp, http.StatusBadRequest)
	})
}

func TestListGroups(t *testing.T) {
	env := setupTestEnv(t)

	groupA := createTestGroup(t, env, "alpha runners", "alice", "alice-password", []string{"run"})
	groupB := createTestGroup(t, env, "beta swimmers", "bob", "bob-password", []string{"swim"})
	createTestGroup(t, env, "gamma cyclists", "carol", "carol-password", nil)

	// bob and carol join alpha so it leads the participants sort.
	for _, member := range []struct{ nickname, password string }{
		{"bob", "bob-password"},
		{"carol", "carol-password"},
	} {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/groups/"+groupA.String()+"/participants", map[string]any{
			"nickname": member.nickname,
			"password": member.password,
		}, nil)
		assertStatus(t, resp, http.StatusCreated)
	}

	// beta gets the only like so it leads the recommend sort.
	liker := createTestUser(t, env.db, "dave", "dave-password")
	resp := performJSONRequest(t, env.app, http.MethodPost, "/api/groups/"+groupB.String()+"/likes", map[string]any{
		"userId": liker.ID,
	}, nil)
	assertStatus(t, resp, http.StatusOK)

	listGroups := func(t *testing.T, query string) []any {
		t.Helper()
		resp := performJSONRequest(t, env.app, http.MethodGet, "/api/groups"+query, nil, nil)
		assertStatus(t, resp, http.StatusOK)
		data := dataMap(t, decodeJSONMap(t, resp))
		groups, _ := data["groups"].([]any)
		return groups
	}

	t.Run("default latest sort returns newest first", func(t *testing.T) {
		groups := listGroups(t, "")
		if len(groups) != 3 {
			t.Fatalf("expected 3 groups, got %d", len(groups))
		}
		first, _ := groups[0].(map[string]any)
		if first["name"] != "gamma cyclists" {
			t.Errorf("expected newest group first, got %v", first["name"])
		}
	})

	t.Run("recommend sort puts most liked group first", func(t *testing.T) {
		groups := listGroups(t, "?sort=recommend")
		first, _ := groups[0].(map[string]any)
		if first["name"] != "beta swimmers" {
			t.Errorf("expected beta swimmers first, got %v", first["name"])
		}
		if count, _ := first["recommendCount"].(float64); count != 1 {
			t.Errorf("expected recommendCount 1, got %v", first["recommendCount"])
		}
	})

	t.Run("participants sort puts largest group first", func(t *testing.T) {
		groups := listGroups(t, "?sort=participants")
		first, _ := groups[0].(map[string]any)
		if first["name"] != "alpha runners" {
			t.Errorf("expected alpha runners first, got %v", first["name"])
		}
		if count, _ := first["participantCount"].(float64); count != 3 {
			t.Errorf("expected participantCount 3, got %v", first["participantCount"])
		}
	})

	t.Run("search filters by name substring", func(t *testing.T) {
		groups := listGroups(t, "?search=swim")
		if len(groups) != 1 {
			t.Fatalf("expected 1 group, got %d", len(groups))
		}
		first, _ := groups[0].(map[string]any)
		if first["name"] != "beta swimmers" {
			t.Errorf("expected beta swimmers, got %v", first["name"])
		}
	})

	t.Run("pagination slices derived-count sorts", func(t *testing.T) {
		groups := listGroups(t, "?sort=participants&page=2&limit=2")
		if len(groups) != 1 {
			t.Fatalf("expected 1 group on second page, got %d", len(groups))
		}
	})

	t.Run("invalid sort returns 400", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodGet, "/api/groups?sort=alphabetical", nil, nil)
		assertStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("pagination metadata reflects totals", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodGet, "/api/groups?limit=2", nil, nil)
		assertStatus(t, resp, http.StatusOK)
		data := dataMap(t, decodeJSONMap(t, resp))
		pagination, _ := data["pagination"].(map[string]any)
		if total, _ := pagination["totalCount"].(float64); total != 3 {
			t.Errorf("expected totalCount 3, got %v", pagination["totalCount"])
		}
		if hasNext, _ := pagination["hasNextPage"].(bool); !hasNext {
			t.Error("expected hasNextPage true")
		}
	})
}

func TestUpdateGroup(t *testing.T) {
	env := setupTestEnv(t)
	groupID := createTestGroup(t, env, "night owls", "alice", "alice-password", []string{"run", "night"})
	path := "/api/groups/" + groupID.String()

	t.Run("requires the owner password", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPatch, path, map[string]any{
			"name": "renamed",
		}, nil)
		assertStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("rejects wrong owner password", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPatch, path, map[string]any{
			"name":          "renamed",
			"ownerPassword": "wrong-password",
		}, nil)
		assertStatus(t, resp, http.StatusUnauthorized)
		assertEnvelopeError(t, decodeJSONMap(t, resp), "wrong password")
	})

	t.Run("updates scalars and replaces the tag set", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPatch, path, map[string]any{
			"name":          "dawn patrol",
			"goalRep":       250,
			"tags":          []string{"morning"},
			"ownerPassword": "alice-password",
		}, nil)
		assertStatus(t, resp, http.StatusOK)

		data := dataMap(t, decodeJSONMap(t, resp))
		if data["name"] != "dawn patrol" {
			t.Errorf("expected renamed group, got %v", data["name"])
		}
		if goal, _ := data["goalRep"].(float64); goal != 250 {
			t.Errorf("expected goalRep 250, got %v", data["goalRep"])
		}
		tags, _ := data["tags"].([]any)
		if len(tags) != 1 || tags[0] != "morning" {
			t.Errorf("expected tags replaced with [morning], got %v", tags)
		}

		var tagCount int64
		env.db.Model(&models.Tag{}).Where("group_id = ?", groupID).Count(&tagCount)
		if tagCount != 1 {
			t.Errorf("expected 1 tag row after replacement, got %d", tagCount)
		}
	})

	t.Run("renames the owner everywhere", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPatch, path, map[string]any{
			"ownerNickname": "alicia",
			"ownerPassword": "alice-password",
		}, nil)
		assertStatus(t, resp, http.StatusOK)

		data := dataMap(t, decodeJSONMap(t, resp))
		owner, _ := data["owner"].(map[string]any)
		if owner["nickname"] != "alicia" {
			t.Errorf("expected owner nickname alicia, got %v", owner["nickname"])
		}

		var count int64
		env.db.Model(&models.User{}).Where("nickname = ?", "alice").Count(&count)
		if count != 0 {
			t.Error("expected old nickname to be gone from users")
		}
	})

	t.Run("rejects blank name", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPatch, path, map[string]any{
			"name":          "   ",
			"ownerPassword": "alice-password",
		}, nil)
		assertStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("unknown group returns 404", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPatch, "/api/groups/00000000-0000-0000-0000-000000000001", map[string]any{
			"name":          "ghost",
			"ownerPassword": "alice-password",
		}, nil)
		assertStatus(t, resp, http.StatusNotFound)
	})
}

func TestDeleteGroup(t *testing.T) {
	env := setupTestEnv(t)
	groupID := createTestGroup(t, env, "doomed group", "alice", "alice-password", []string{"run"})
	path := "/api/groups/" + groupID.String()

	// seed a record with a photo and a like so the cascade has something to chew on
	recordResp := performJSONRequest(t, env.app, http.MethodPost, path+"/records", map[string]any{
		"exerciseType":   "run",
		"time":           1800,
		"distance":       5.0,
		"photos":         []string{"https://cdn.example.com/run.jpg"},
		"authorNickname": "alice",
		"authorPassword": "alice-password",
	}, nil)
	assertStatus(t, recordResp, http.StatusCreated)
	recordResp.Body.Close()

	liker := createTestUser(t, env.db, "bob", "bob-password")
	likeResp := performJSONRequest(t, env.app, http.MethodPost, path+"/likes", map[string]any{"userId": liker.ID}, nil)
	assertStatus(t, likeResp, http.StatusOK)
	likeResp.Body.Close()

	t.Run("rejects wrong password", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodDelete, path, map[string]any{
			"ownerPassword": "wrong-password",
		}, nil)
		assertStatus(t, resp, http.StatusUnauthorized)
	})

	t.Run("deletes the group and every dependent row", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodDelete, path, map[string]any{
			"ownerPassword": "alice-password",
		}, nil)
		assertStatus(t, resp, http.StatusOK)

		data := dataMap(t, decodeJSONMap(t, resp))
		if data["message"] != "group deleted" {
			t.Errorf("unexpected delete message: %v", data["message"])
		}

		for name, model := range map[string]any{
			"groups":       &models.Group{},
			"tags":         &models.Tag{},
			"participants": &models.Participant{},
			"records":      &models.ExerciseRecord{},
			"recommends":   &models.GroupRecommend{},
		} {
			var count int64
			env.db.Model(model).Count(&count)
			if count != 0 {
				t.Errorf("expected no %s rows after delete, got %d", name, count)
			}
		}
		var photoCount int64
		env.db.Model(&models.Photo{}).Count(&photoCount)
		if photoCount != 0 {
			t.Errorf("expected no photo rows after delete, got %d", photoCount)
		}

		getResp := performJSONRequest(t, env.app, http.MethodGet, path, nil, nil)
		assertStatus(t, getResp, http.StatusNotFound)
		getResp.Body.Close()
	})

	t.Run("accepts the password field as fallback", func(t *testing.T) {
		otherID := createTestGroup(t, env, "other group", "carol", "carol-password", nil)
		resp := performJSONRequest(t, env.app, http.MethodDelete, fmt.Sprintf("/api/groups/%s", otherID), map[string]any{
			"password": "carol-password",
		}, nil)
		assertStatus(t, resp, http.StatusOK)
	})
}
