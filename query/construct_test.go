package query

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Mohammadwh/Graphqler/schema"
)

func TestConstruct(t *testing.T) {
	t.Parallel()

	userByID := &schema.Operation{
		Name:       "userById",
		Kind:       schema.OperationKindQuery,
		Arguments:  []schema.Argument{{Name: "id", Type: "ID"}},
		ReturnType: "User",
	}
	createUser := &schema.Operation{
		Name: "createUser",
		Kind: schema.OperationKindMutation,
		Arguments: []schema.Argument{
			{Name: "name", Type: "String"},
			{Name: "age", Type: "Int"},
			{Name: "admin", Type: "Boolean"},
		},
		ReturnType: "User",
	}

	type args struct {
		op       *schema.Operation
		values   map[string]any
		fragment string
	}

	tests := []struct {
		name string
		args args
		want string
	}{
		{
			name: "引数付きのクエリを組み立てる",
			args: args{op: userByID, values: map[string]any{"id": "42"}, fragment: "id name"},
			want: "query {\n  userById(id: \"42\") { id name }\n}\n",
		},
		{
			name: "引数がなければ括弧を付けない",
			args: args{op: userByID, values: nil, fragment: "id"},
			want: "query {\n  userById { id }\n}\n",
		},
		{
			name: "ミューテーションは宣言順に引数を並べJSONリテラルで書く",
			args: args{
				op:       createUser,
				values:   map[string]any{"admin": false, "age": int64(30), "name": "Ann \"A\"", "extra": nil},
				fragment: "id friend { id }",
			},
			want: "mutation {\n  createUser(name: \"Ann \\\"A\\\"\", age: 30, admin: false, extra: null) { id friend { id } }\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Construct(tt.args.op, tt.args.values, tt.args.fragment)
			if err != nil {
				t.Fatalf("Construct() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Construct() mismatch (-want +got):\n%s", diff)
			}

			if _, err := Parse(got); err != nil {
				t.Errorf("Parse() of constructed document: %v", err)
			}
			if strings.Count(got, "{") != strings.Count(got, "}") {
				t.Errorf("unbalanced braces in %q", got)
			}
			if strings.Contains(got, "()") {
				t.Errorf("empty parentheses in %q", got)
			}
		})
	}
}

func TestConstruct_Substrings(t *testing.T) {
	t.Parallel()

	op := &schema.Operation{Name: "userById", Kind: schema.OperationKindQuery}
	got, err := Construct(op, map[string]any{"id": "42"}, "id name")
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"query {", `userById(id: "42")`, "{ id name }"} {
		if !strings.Contains(got, want) {
			t.Errorf("Construct() = %q, missing %q", got, want)
		}
	}
}
