// file: routes/router_test.go
package routes

import (
	"CTFQuest/models"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func setupTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Level{},
		&models.Challenge{},
		&models.UserChallenge{},
		&models.FlagSubmission{},
	))

	// 测试不依赖 Redis，排行榜直接落库
	return SetupRouter(db, nil), db
}

func perform(t *testing.T, r *gin.Engine, method, path, body, contentType, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "response is not an envelope: %s", w.Body.String())
	return w, env
}

func registerUser(t *testing.T, r *gin.Engine, username, email string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"email":%q,"password":"password123"}`, username, email)
	w, env := perform(t, r, http.MethodPost, "/auth/register", body, "application/json", "")
	require.Equal(t, http.StatusOK, w.Code, "register failed: %s", w.Body.String())

	var data struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken
}

func seedChallenge(t *testing.T, db *gorm.DB, flag string, reward int) *models.Challenge {
	t.Helper()
	level := models.Level{Name: "Digital Detective", Description: "d", Order: 1}
	require.NoError(t, db.Create(&level).Error)
	challenge := models.Challenge{
		Name:        "SQL Injection Challenge",
		Description: "Bypass the login.",
		Difficulty:  models.ChallengeDifficultyEasy,
		Category:    "SQL Injection",
		XPReward:    reward,
		Flag:        flag,
		Hint:        "Try a quote.",
		LevelID:     level.ID,
	}
	require.NoError(t, db.Create(&challenge).Error)
	return &challenge
}

// 核心场景：注册 → 登录 → 提交错误 Flag → 提交正确 Flag → 重复提交
func TestSubmitFlagScenario(t *testing.T) {
	r, db := setupTestServer(t)
	challenge := seedChallenge(t, db, "FLAG{scenario}", 20)

	registerUser(t, r, "alice", "alice@example.com")

	// OAuth2 风格表单登录，username 字段放邮箱
	form := url.Values{"username": {"alice@example.com"}, "password": {"password123"}}
	w, env := perform(t, r, http.MethodPost, "/auth/login", form.Encode(), "application/x-www-form-urlencoded", "")
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.Equal(t, "bearer", login.TokenType)
	token := login.AccessToken

	submitPath := fmt.Sprintf("/challenges/%d/submit_flag", challenge.ID)

	// 错误 Flag → 400，XP 不变
	w, _ = perform(t, r, http.MethodPost, submitPath, `{"flag":"FLAG{nope}"}`, "application/json", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = perform(t, r, http.MethodGet, "/users/profile", "", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	var profile struct {
		XP                  int      `json:"xp"`
		CompletedChallenges []uint32 `json:"completed_challenges"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, 0, profile.XP)
	assert.Empty(t, profile.CompletedChallenges)

	// 正确 Flag → 200，+20 XP
	w, env = perform(t, r, http.MethodPost, submitPath, `{"flag":"FLAG{scenario}"}`, "application/json", token)
	require.Equal(t, http.StatusOK, w.Code, "correct flag rejected: %s", w.Body.String())
	var result struct {
		XPEarned int `json:"xp_earned"`
		TotalXP  int `json:"total_xp"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 20, result.XPEarned)
	assert.Equal(t, 20, result.TotalXP)

	// 重复提交 → 400，XP 保持 20
	w, _ = perform(t, r, http.MethodPost, submitPath, `{"flag":"FLAG{scenario}"}`, "application/json", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = perform(t, r, http.MethodGet, "/users/profile", "", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, 20, profile.XP)
	assert.Equal(t, []uint32{challenge.ID}, profile.CompletedChallenges)

	// 完成状态查询
	w, env = perform(t, r, http.MethodGet, fmt.Sprintf("/challenges/%d/status", challenge.ID), "", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	var status struct {
		Completed bool `json:"completed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.True(t, status.Completed)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, _ := setupTestServer(t)
	registerUser(t, r, "alice", "alice@example.com")

	body := `{"username":"alice2","email":"alice@example.com","password":"password123"}`
	w, _ := perform(t, r, http.MethodPost, "/auth/register", body, "application/json", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginBadPassword(t *testing.T) {
	r, _ := setupTestServer(t)
	registerUser(t, r, "alice", "alice@example.com")

	form := url.Values{"username": {"alice@example.com"}, "password": {"wrong"}}
	w, _ := perform(t, r, http.MethodPost, "/auth/login", form.Encode(), "application/x-www-form-urlencoded", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired(t *testing.T) {
	r, _ := setupTestServer(t)

	w, _ := perform(t, r, http.MethodGet, "/users/profile", "", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = perform(t, r, http.MethodGet, "/users/profile", "", "", "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 创建题目同样要求登录
	w, _ = perform(t, r, http.MethodPost, "/challenges/create", `{"name":"x"}`, "application/json", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLevelRoutes(t *testing.T) {
	r, db := setupTestServer(t)
	challenge := seedChallenge(t, db, "FLAG{x}", 10)

	w, env := perform(t, r, http.MethodGet, "/levels", "", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var levels []models.Level
	require.NoError(t, json.Unmarshal(env.Data, &levels))
	require.Len(t, levels, 1)
	assert.Equal(t, "Digital Detective", levels[0].Name)

	w, _ = perform(t, r, http.MethodGet, fmt.Sprintf("/levels/%d", levels[0].ID), "", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = perform(t, r, http.MethodGet, "/levels/9999", "", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = perform(t, r, http.MethodGet, fmt.Sprintf("/levels/%d/challenges", levels[0].ID), "", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Total      int `json:"total"`
		Challenges []struct {
			ID uint32 `json:"id"`
		} `json:"challenges"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, challenge.ID, list.Challenges[0].ID)
}

func TestChallengeDetailHidesFlag(t *testing.T) {
	r, db := setupTestServer(t)
	challenge := seedChallenge(t, db, "FLAG{top_secret}", 10)

	w, _ := perform(t, r, http.MethodGet, fmt.Sprintf("/challenges/%d", challenge.ID), "", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "FLAG{top_secret}")
	assert.NotContains(t, w.Body.String(), "Try a quote.")

	w, _ = perform(t, r, http.MethodGet, "/challenges/9999", "", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateChallengeEndpoint(t *testing.T) {
	r, db := setupTestServer(t)
	level := models.Level{Name: "L1", Description: "d", Order: 1}
	require.NoError(t, db.Create(&level).Error)

	token := registerUser(t, r, "admin", "admin@example.com")

	body := fmt.Sprintf(`{"name":"New Challenge","description":"d","category":"Crypto","difficulty":"Hard","xp_reward":40,"flag":"FLAG{new}","level_id":%d}`, level.ID)
	w, env := perform(t, r, http.MethodPost, "/challenges/create", body, "application/json", token)
	require.Equal(t, http.StatusOK, w.Code, "create failed: %s", w.Body.String())

	var created struct {
		ID       uint32 `json:"id"`
		XPReward int    `json:"xp_reward"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, 40, created.XPReward)
	assert.NotContains(t, w.Body.String(), "FLAG{new}", "created challenge response must not echo the flag")

	// 未知关卡 → 404
	w, _ = perform(t, r, http.MethodPost, "/challenges/create",
		`{"name":"x","description":"d","category":"Misc","level_id":9999}`, "application/json", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHintEndpoint(t *testing.T) {
	r, db := setupTestServer(t)
	challenge := seedChallenge(t, db, "FLAG{x}", 10)
	token := registerUser(t, r, "alice", "alice@example.com")

	hintPath := fmt.Sprintf("/challenges/%d/hint", challenge.ID)

	// XP 不足 → 400
	w, _ := perform(t, r, http.MethodPost, hintPath, "", "", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 充值 10 XP 后买提示，固定扣 5
	w, env := perform(t, r, http.MethodPost, "/users/update_xp?amount=10", "", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	var xp struct {
		NewXP int `json:"new_xp"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &xp))
	require.Equal(t, 10, xp.NewXP)

	w, env = perform(t, r, http.MethodPost, hintPath, "", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	var hint struct {
		Hint        string `json:"hint"`
		RemainingXP int    `json:"remaining_xp"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &hint))
	assert.Equal(t, "Try a quote.", hint.Hint)
	assert.Equal(t, 5, hint.RemainingXP)
}

func TestLeaderboardEndpoint(t *testing.T) {
	r, db := setupTestServer(t)
	challenge := seedChallenge(t, db, "FLAG{x}", 50)

	tokenA := registerUser(t, r, "alice", "alice@example.com")
	registerUser(t, r, "bob", "bob@example.com")

	submitPath := fmt.Sprintf("/challenges/%d/submit_flag", challenge.ID)
	w, _ := perform(t, r, http.MethodPost, submitPath, `{"flag":"FLAG{x}"}`, "application/json", tokenA)
	require.Equal(t, http.StatusOK, w.Code)

	w, env := perform(t, r, http.MethodGet, "/users/leaderboard", "", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var entries []struct {
		Username string `json:"username"`
		XP       int    `json:"xp"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, 50, entries[0].XP)
	assert.Equal(t, "bob", entries[1].Username)
}
