package rpc

import "testing"

func TestParseURL(t *testing.T) {
	t.Run("full", func(t *testing.T) {
		u, err := ParseURL("local://127.0.0.1:20880/com.example.EchoService?reference.filter=accesslog&version=1.0")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.Protocol != "local" {
			t.Errorf("expected local, got %s", u.Protocol)
		}
		if u.Host != "127.0.0.1" || u.Port != 20880 {
			t.Errorf("unexpected address: %s", u.Address())
		}
		if u.Interface != "com.example.EchoService" {
			t.Errorf("unexpected interface: %s", u.Interface)
		}
		if v, _ := u.Param("version"); v != "1.0" {
			t.Errorf("unexpected version: %s", v)
		}
	})

	t.Run("no scheme", func(t *testing.T) {
		if _, err := ParseURL("127.0.0.1:x/Service"); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("no port", func(t *testing.T) {
		u, err := ParseURL("registry://consul.internal/RegistryService")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.Port != 0 {
			t.Errorf("expected 0, got %d", u.Port)
		}
		if u.Address() != "consul.internal" {
			t.Errorf("unexpected address: %s", u.Address())
		}
	})
}

func TestURL_IsRegistry(t *testing.T) {
	t.Run("registry protocol", func(t *testing.T) {
		u := NewURL("registry", "127.0.0.1", 8500, "RegistryService", nil)
		if !u.IsRegistry() {
			t.Error("expected registry")
		}
	})

	t.Run("registry param", func(t *testing.T) {
		u := NewURL("local", "127.0.0.1", 0, "Service", map[string]string{"registry": "consul"})
		if !u.IsRegistry() {
			t.Error("expected registry")
		}
	})

	t.Run("plain endpoint", func(t *testing.T) {
		u := NewURL("local", "127.0.0.1", 0, "Service", map[string]string{"version": "1.0"})
		if u.IsRegistry() {
			t.Error("expected non-registry")
		}
	})
}

func TestURL_ParamsCopied(t *testing.T) {
	params := map[string]string{"k": "v"}
	u := NewURL("local", "127.0.0.1", 0, "Service", params)

	// 构造后修改原 map 不能影响 URL
	params["k"] = "changed"
	if got := u.ParamOr("k", ""); got != "v" {
		t.Errorf("expected v, got %s", got)
	}
}

func TestURL_String(t *testing.T) {
	u := NewURL("local", "127.0.0.1", 20880, "Service", map[string]string{
		"b": "2",
		"a": "1",
	})
	want := "local://127.0.0.1:20880/Service?a=1&b=2"
	if got := u.String(); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestURL_StringRoundTrip(t *testing.T) {
	u := NewURL("local", "127.0.0.1", 20880, "Service", map[string]string{"a": "1"})
	parsed, err := ParseURL(u.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.String() != u.String() {
		t.Errorf("round trip mismatch: %s != %s", parsed.String(), u.String())
	}
}
