package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"restaurant-pos/internal/config"
	"restaurant-pos/internal/models"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		TerminalKeys: map[string]string{
			"kitchen-key": "kitchen",
			"cashier-key": "cashier",
		},
		RoleCapabilities: map[string][]models.Capability{
			"kitchen": {models.CapKitchen},
			"cashier": {models.CapBilling, models.CapCancel},
		},
	}
}

func TestTerminalAuth(t *testing.T) {
	cfg := testAuthConfig()

	// The wrapped handler reports the resolved actor's role.
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFrom(r.Context())
		if !ok {
			http.Error(w, "no actor in context", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(actor.Role))
	})

	authHandler := TerminalAuth(cfg)(testHandler)

	tests := []struct {
		name           string
		key            string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "kitchen terminal",
			key:            "kitchen-key",
			expectedStatus: http.StatusOK,
			expectedBody:   "kitchen",
		},
		{
			name:           "cashier terminal",
			key:            "cashier-key",
			expectedStatus: http.StatusOK,
			expectedBody:   "cashier",
		},
		{
			name:           "missing key",
			key:            "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unknown key",
			key:            "wrongkey",
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
			if tt.key != "" {
				req.Header.Set("terminal_key", tt.key)
			}

			w := httptest.NewRecorder()
			authHandler.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			if tt.expectedStatus == http.StatusOK {
				if w.Body.String() != tt.expectedBody {
					t.Errorf("body = %s, want %s", w.Body.String(), tt.expectedBody)
				}
			}
		})
	}
}

func TestActorFrom_EmptyContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	if _, ok := ActorFrom(req.Context()); ok {
		t.Error("ActorFrom() on a bare context should report no actor")
	}
}
