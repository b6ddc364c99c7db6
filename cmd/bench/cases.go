// README: Bench checks: environment, migration, fare/pricing/booking API contracts, admin flow, and load.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
	StatusSkip = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
	token string
}

type Result struct {
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))
	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	estimate := map[string]any{
		"pickup":   "Tiruvannamalai",
		"drop":     "Chennai",
		"category": "Sedan",
		"tripType": "oneWay",
		"date":     "2026-03-14",
		"time":     "10:00",
	}

	return []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: StatusSkip, Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name: "Migration: apply (optional)",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: StatusSkip, Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: StatusFail, Note: "db not configured"}
				}
				sql, err := os.ReadFile(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				for _, s := range splitSQL(string(sql)) {
					if _, err := r.db.Exec(ctx, s); err != nil {
						return Result{Status: StatusFail, Note: err.Error()}
					}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name: "Migration: tables exist",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "db not configured"}
				}
				tables, err := extractTables(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: StatusFail, Note: err.Error()}
					}
					if !exists {
						return Result{Status: StatusFail, Note: "missing table: " + t}
					}
				}
				return Result{Status: StatusPass, Note: strings.Join(tables, ",")}
			},
		},
		httpCase("API: health", http.MethodGet, base+"/health", nil, http.StatusOK, nil),
		httpCase("Fare: estimate known cities", http.MethodPost, base+"/api/fare/estimate", estimate, http.StatusOK,
			func(body map[string]any) string {
				if body["surgeLabel"] != "Peak Hour Surge applied" {
					return fmt.Sprintf("surgeLabel=%v", body["surgeLabel"])
				}
				if body["lowConfidence"] == true {
					return "known cities flagged low confidence"
				}
				return ""
			}),
		httpCase("Fare: unknown city is low confidence", http.MethodPost, base+"/api/fare/estimate", map[string]any{
			"pickup": "Nowhereville", "drop": "Chennai", "category": "Sedan",
		}, http.StatusOK, func(body map[string]any) string {
			if body["lowConfidence"] != true || body["distanceSource"] != "random" {
				return fmt.Sprintf("source=%v lowConfidence=%v", body["distanceSource"], body["lowConfidence"])
			}
			return ""
		}),
		httpCase("Fare: missing pickup -> 400", http.MethodPost, base+"/api/fare/estimate", map[string]any{
			"drop": "Chennai", "category": "Sedan",
		}, http.StatusBadRequest, nil),
		httpCase("Fare: unknown category -> 400", http.MethodPost, base+"/api/fare/estimate", map[string]any{
			"pickup": "Vellore", "drop": "Chennai", "category": "Tempo Traveller",
		}, http.StatusBadRequest, nil),
		httpCase("Pricing: table has every category", http.MethodGet, base+"/api/pricing", nil, http.StatusOK, nil),
		httpCase("Booking: invalid phone -> 400", http.MethodPost, base+"/api/bookings", map[string]any{
			"name": "Bench", "email": "bench@example.com", "phone": "12345",
			"pickup": "Vellore", "drop": "Chennai", "category": "Sedan", "date": "2026-03-14", "time": "10:00",
		}, http.StatusBadRequest, nil),
		httpCase("Admin: update without token -> 401", http.MethodPut, base+"/api/admin/pricing",
			[]map[string]any{{"category": "Sedan", "oneWay": 14}}, http.StatusUnauthorized, nil),
		{
			Name: "Admin: login and list routes",
			Run: func(ctx context.Context, r *Runner) Result {
				return adminFlow(ctx, r, base)
			},
		},
		{
			Name: "Perf: fare estimate throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/api/fare/estimate", estimate)
			},
		},
	}
}

// httpCase passes when the status matches and check (if any) finds nothing wrong in the JSON body.
func httpCase(name, method, url string, body any, wantStatus int, check func(map[string]any) string) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			status, raw, latency, err := r.do(ctx, method, url, body, "")
			if err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			if status != wantStatus {
				return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("status=%d want=%d", status, wantStatus)}
			}
			if check != nil {
				var parsed map[string]any
				if err := json.Unmarshal(raw, &parsed); err != nil {
					return Result{Status: StatusFail, Latency: latency, Note: "body is not a JSON object"}
				}
				if msg := check(parsed); msg != "" {
					return Result{Status: StatusFail, Latency: latency, Note: msg}
				}
			}
			return Result{Status: StatusPass, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
		},
	}
}

func (r *Runner) do(ctx context.Context, method, url string, body any, token string) (int, []byte, time.Duration, error) {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, raw, time.Since(start), nil
}

func adminFlow(ctx context.Context, r *Runner, base string) Result {
	if r.cfg.AdminPassword == "" {
		return Result{Status: StatusSkip, Note: "admin password not configured"}
	}
	status, raw, _, err := r.do(ctx, http.MethodPost, base+"/api/admin/login", map[string]string{"password": r.cfg.AdminPassword}, "")
	if err != nil {
		return Result{Status: StatusFail, Note: err.Error()}
	}
	if status != http.StatusOK {
		return Result{Status: StatusFail, Note: fmt.Sprintf("login status=%d", status)}
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(raw, &login); err != nil || login.Token == "" {
		return Result{Status: StatusFail, Note: "login returned no token"}
	}
	r.token = login.Token

	status, _, latency, err := r.do(ctx, http.MethodGet, base+"/api/admin/routes", nil, r.token)
	if err != nil {
		return Result{Status: StatusFail, Note: err.Error()}
	}
	if status != http.StatusOK {
		return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("routes status=%d", status)}
	}
	return Result{Status: StatusPass, Latency: latency}
}

func perfLoad(ctx context.Context, r *Runner, url string, payload any) Result {
	b, _ := json.Marshal(payload)
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
				req.Header.Set("Content-Type", "application/json")
				resp, err := r.httpc.Do(req)
				if err != nil {
					errCount.Add(1)
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				if resp.StatusCode != http.StatusOK {
					errCount.Add(1)
					continue
				}
				count.Add(1)
			}
		}()
	}
	wg.Wait()

	if count.Load() == 0 {
		return Result{Status: StatusFail, Note: "no requests completed"}
	}
	rps := float64(count.Load()) / r.cfg.Duration.Seconds()
	return Result{Status: StatusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount.Load())}
}

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	re := regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)
	matches := re.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	parts := strings.Split(strings.Join(filtered, "\n"), ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
