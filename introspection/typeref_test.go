package introspection

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ptr[T any](v T) *T {
	return &v
}

func TestTypeRef_Resolve(t *testing.T) {
	t.Parallel()

	type want struct {
		name   string
		ok     bool
		syntax string
	}

	tests := []struct {
		name string
		ref  *TypeRef
		want want
	}{
		{
			name: "名前付きの型はそのまま返す",
			ref:  &TypeRef{Kind: TypeKindObject, Name: ptr("User")},
			want: want{name: "User", ok: true, syntax: "User"},
		},
		{
			name: "NON_NULLとLISTを剥がして内側の型名を返す",
			ref: &TypeRef{Kind: TypeKindNonNull, OfType: &TypeRef{
				Kind: TypeKindList, OfType: &TypeRef{
					Kind: TypeKindNonNull, OfType: &TypeRef{Kind: TypeKindObject, Name: ptr("User")},
				},
			}},
			want: want{name: "User", ok: true, syntax: "[User!]!"},
		},
		{
			name: "空文字の名前は無視してofTypeを辿る",
			ref:  &TypeRef{Kind: TypeKindList, Name: ptr(""), OfType: &TypeRef{Kind: TypeKindScalar, Name: ptr("Int")}},
			want: want{name: "Int", ok: true, syntax: "[Int]"},
		},
		{
			name: "名前もofTypeもない場合は解決できない",
			ref:  &TypeRef{Kind: TypeKindNonNull},
			want: want{name: "", ok: false, syntax: "!"},
		},
		{
			name: "nilは解決できない",
			ref:  nil,
			want: want{name: "", ok: false, syntax: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			name, ok := tt.ref.Resolve()
			got := want{name: name, ok: ok, syntax: tt.ref.String()}
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(want{})); diff != "" {
				t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTypeRef_ResolveDeepNesting(t *testing.T) {
	t.Parallel()

	// deeper than the TypeRef fragment of the introspection query
	ref := &TypeRef{Kind: TypeKindScalar, Name: ptr("String")}
	for i := 0; i < 50; i++ {
		kind := TypeKindList
		if i%2 == 0 {
			kind = TypeKindNonNull
		}
		ref = &TypeRef{Kind: kind, OfType: ref}
	}

	if got := ResolveName(ref); got != "String" {
		t.Errorf("ResolveName() = %q, want %q", got, "String")
	}
}
