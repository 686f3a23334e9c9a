package config

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("GRAPHQLER_TEST_ENDPOINT", "https://api.example.com/graphql")

	type want struct {
		config *Config
		err    string
	}

	tests := []struct {
		name string
		file string
		want want
	}{
		{
			name: "設定ファイルが存在しない場合はエラー",
			file: "doesnotexist.yml",
			want: want{err: "unable to read config"},
		},
		{
			name: "不正な形式の設定ファイルはエラー",
			file: "testdata/cfg/malformedconfig.yml",
			want: want{err: "unable to parse config"},
		},
		{
			name: "不明なキーが含まれている場合はエラー",
			file: "testdata/cfg/unknownkeys.yml",
			want: want{err: "unknown field \"unknown\""},
		},
		{
			name: "すべての項目を読み込み環境変数を展開する",
			file: "testdata/cfg/full.yml",
			want: want{
				config: &Config{
					Schema: "../testdata/schema.json",
					Endpoint: &EndPointConfig{
						URL:     "https://api.example.com/graphql",
						Headers: http.Header{"Authorization": []string{"Bearer secret"}},
					},
					Proxy:       "http://127.0.0.1:8080",
					Cookies:     "cookies.json",
					Logs:        "out/logs",
					MaxDepth:    3,
					HistoryFile: "/tmp/graphqler_history",
				},
			},
		},
		{
			name: "省略された項目には既定値を入れる",
			file: "testdata/cfg/minimal.yml",
			want: want{
				config: &Config{
					Schema:   "schema.json",
					Logs:     DefaultLogDir,
					MaxDepth: 8,
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadConfig(tt.file)
			if tt.want.err != "" {
				if err == nil || !strings.Contains(err.Error(), tt.want.err) {
					t.Fatalf("LoadConfig() error = %v, want containing %q", err, tt.want.err)
				}

				return
			}
			if err != nil {
				t.Fatalf("LoadConfig() unexpected error: %v", err)
			}

			if diff := cmp.Diff(tt.want.config, got); diff != "" {
				t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	got, err := FindConfigFile("testdata/find", DefaultConfigNames)
	if err != nil {
		t.Fatalf("FindConfigFile() unexpected error: %v", err)
	}
	// .graphqler.yml is a directory there and must be skipped
	if want := filepath.Join("testdata/find", "graphqler.yaml"); got != want {
		t.Errorf("FindConfigFile() = %q, want %q", got, want)
	}

	if _, err := FindConfigFile("testdata/cfg", DefaultConfigNames); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("FindConfigFile() error = %v, want %v", err, ErrConfigNotFound)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{name: "ファイルだけ", config: Config{Schema: "schema.json"}},
		{name: "エンドポイントだけ", config: Config{Endpoint: &EndPointConfig{URL: "http://localhost"}}},
		{name: "両方指定してもよい", config: Config{Schema: "schema.json", Endpoint: &EndPointConfig{URL: "http://localhost"}}},
		{name: "どちらもない場合はエラー", config: Config{}, wantErr: ErrNoSchemaSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := tt.config.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_LoadModel(t *testing.T) {
	t.Parallel()

	fixture, err := os.ReadFile("../testdata/schema.json")
	if err != nil {
		t.Fatal(err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "k" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"errors":[{"message":"unauthorized"}]}`))
			return
		}
		_, _ = w.Write(fixture)
	}))
	t.Cleanup(server.Close)

	tests := []struct {
		name    string
		config  *Config
		wantOps int
		wantErr bool
	}{
		{
			name:    "ファイルからスキーマを読み込む",
			config:  &Config{Schema: "../testdata/schema.json"},
			wantOps: 7,
		},
		{
			name:    "エンドポイントからスキーマを取得する",
			config:  &Config{Endpoint: &EndPointConfig{URL: server.URL, Headers: http.Header{"X-Api-Key": []string{"k"}}}},
			wantOps: 7,
		},
		{
			name:    "イントロスペクションが拒否された場合はエラー",
			config:  &Config{Endpoint: &EndPointConfig{URL: server.URL}},
			wantErr: true,
		},
		{
			name:    "ファイルがない場合はエラー",
			config:  &Config{Schema: "testdata/missing.json"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := tt.config.Client()
			if err != nil {
				t.Fatal(err)
			}

			m, err := tt.config.LoadModel(context.Background(), c)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadModel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got := len(m.Operations()); got != tt.wantOps {
				t.Errorf("operations = %d, want %d", got, tt.wantOps)
			}
		})
	}
}
