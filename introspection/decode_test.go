package introspection

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		wantErr error
		wantMsg string
	}{
		{
			name:    "JSONとして不正な場合はエラー",
			raw:     `{"data":`,
			wantErr: ErrMalformedSchema,
		},
		{
			name:    "dataがない場合はエラー",
			raw:     `{"errors":[{"message":"introspection disabled"}]}`,
			wantErr: ErrMalformedSchema,
			wantMsg: "introspection disabled",
		},
		{
			name:    "トップレベルが配列の場合はエラー",
			raw:     `[{"data":{}}]`,
			wantErr: ErrMalformedSchema,
		},
		{
			name:    "__schemaがない場合はエラー",
			raw:     `{"data":{}}`,
			wantErr: ErrMalformedSchema,
		},
		{
			name:    "typesがない場合はエラー",
			raw:     `{"data":{"__schema":{"queryType":{"name":"Query"}}}}`,
			wantErr: ErrMalformedSchema,
		},
		{
			name: "最小限のドキュメントを読み込める",
			raw:  `{"data":{"__schema":{"queryType":{"name":"Query"},"types":[{"kind":"OBJECT","name":"Query","fields":[]}]}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q, err := Decode([]byte(tt.raw))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Decode() error = %v, want %v", err, tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantMsg) {
					t.Errorf("Decode() error = %q, want it to mention %q", err, tt.wantMsg)
				}

				return
			}
			if err != nil {
				t.Fatalf("Decode() unexpected error: %v", err)
			}
			if q == nil || q.Schema == nil {
				t.Fatal("Decode() returned no schema")
			}
		})
	}
}

func TestDecode_Fixture(t *testing.T) {
	t.Parallel()

	raw, err := os.ReadFile("../testdata/schema.json")
	if err != nil {
		t.Fatal(err)
	}

	q, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}

	types := q.Schema.Types.NameMap()
	user, ok := types["User"]
	if !ok {
		t.Fatal("User not found")
	}

	want := []string{"id", "name", "friend", "friends", "posts", "status", "nickname"}
	if diff := cmp.Diff(want, user.FieldNames()); diff != "" {
		t.Errorf("FieldNames() mismatch (-want +got):\n%s", diff)
	}

	if got := user.Field("posts").Type.String(); got != "[Post!]" {
		t.Errorf("posts type = %q, want %q", got, "[Post!]")
	}

	if !types["Status"].HasEnumValue("BANNED") {
		t.Error("Status should have BANNED")
	}
}
