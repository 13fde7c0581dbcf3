package variable

import (
	"reflect"
	"testing"
)

func TestArgument(t *testing.T) {
	tests := []struct {
		name string
		v    Descriptor
		want string
	}{
		{"plain", New("x", "int"), "int x"},
		{"pointer", New("p", "const int *"), "const int * p"},
		{"function pointer", Descriptor{Name: "fn", Type: "int (*fn)(int)", IsFunctionPointer: true}, "int (*fn)(int)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Argument(); got != tt.want {
				t.Errorf("Argument() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStructMember(t *testing.T) {
	tests := []struct {
		name   string
		v      Descriptor
		want   string
		wantOK bool
	}{
		{"plain input", New("x", "int"), "int x;", true},
		{"const input excluded", Descriptor{Name: "c", Type: "const int", IsConst: true}, "", false},
		{"array input excluded", Descriptor{Name: "a", Type: "int *", IsArray: true}, "", false},
		{"const output keeps field without qualifier", Descriptor{Name: "c", Type: "const int", IsConst: true, IsOutput: true}, "int c;", true},
		{"pointer to const", New("p", "const char *"), "char * p;", true},
		{"function pointer", Descriptor{Name: "fn", Type: "int (*const fn)(int)", IsFunctionPointer: true}, "int (*const fn)(int);", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.v.StructMember()
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("StructMember() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestStoreAndRestore(t *testing.T) {
	x := New("x", "int")
	if got, ok := x.Store("r"); !ok || got != "r.x = x;" {
		t.Errorf("Store() = (%q, %v)", got, ok)
	}
	if got, ok := x.Restore("r"); !ok || got != "x = r.x;" {
		t.Errorf("Restore() = (%q, %v)", got, ok)
	}

	for _, v := range []Descriptor{
		{Name: "c", Type: "const int", IsConst: true},
		{Name: "a", Type: "int *", IsArray: true},
	} {
		if _, ok := v.Store("r"); ok {
			t.Errorf("%s: Store should be skipped", v)
		}
		if _, ok := v.Restore("r"); ok {
			t.Errorf("%s: Restore should be skipped", v)
		}
	}
}

func TestDeclareAndInitialize(t *testing.T) {
	tests := []struct {
		name string
		v    Descriptor
		want []string
	}{
		{
			name: "plain output",
			v:    Descriptor{Name: "c", Type: "int", IsOutput: true},
			want: []string{"int c = r.c;"},
		},
		{
			name: "function pointer output",
			v:    Descriptor{Name: "fn", Type: "void (*fn)(void)", IsOutput: true, IsFunctionPointer: true},
			want: []string{"void (*fn)(void) = r.fn;"},
		},
		{
			name: "static output",
			v:    Descriptor{Name: "count", Type: "int", IsOutput: true, IsStatic: true},
			want: []string{"static int count = 0;", "count = r.count;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.DeclareAndInitialize("r")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DeclareAndInitialize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	v := Descriptor{Name: "s", Type: "int", IsOutput: true, IsStatic: true}
	if got := v.String(); got != "s:int[output,static]" {
		t.Errorf("String() = %q", got)
	}
	if got := New("x", " int ").String(); got != "x:int" {
		t.Errorf("String() = %q", got)
	}
}
