package config

import (
	"testing"
)

func parseAndSetConfig(jsonData string) error {
	m, err := JSONToMap([]byte(jsonData))
	if err != nil {
		return err
	}

	return setConfig(m)
}

func parseAndSetDefaultConfig(jsonData string) error {
	m, err := JSONToMap([]byte(jsonData))
	if err != nil {
		return err
	}

	return SetDefaultConfig(m)
}

func quickRegister(t testing.TB, key string, optType OptionType, defaultValue interface{}) {
	t.Helper()

	err := Register(&Option{
		Name:           key,
		Key:            key,
		Description:    "test config",
		ReleaseLevel:   ReleaseLevelStable,
		ExpertiseLevel: ExpertiseLevelUser,
		OptType:        optType,
		DefaultValue:   defaultValue,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestGet(t *testing.T) { //nolint:gocognit
	quickRegister(t, "get/monkey", OptTypeString, "c")
	quickRegister(t, "get/zebras/zebra", OptTypeStringArray, []string{"a", "b"})
	quickRegister(t, "get/elephant", OptTypeInt, -1)
	quickRegister(t, "get/hot", OptTypeBool, false)
	quickRegister(t, "get/cold", OptTypeBool, true)

	err := parseAndSetConfig(`
  {
    "get": {
      "monkey": "1",
      "zebras": {
        "zebra": ["black", "white"]
      },
      "elephant": 2,
      "hot": true,
      "cold": false
    }
  }
  `)
	if err != nil {
		t.Fatal(err)
	}

	err = parseAndSetDefaultConfig(`
  {
    "get": {
      "monkey": "0",
      "elephant": 0
    }
  }
  `)
	if err != nil {
		t.Fatal(err)
	}

	monkey := GetAsString("get/monkey", "none")
	if monkey() != "1" {
		t.Errorf("monkey should be 1, is %s", monkey())
	}

	zebra := GetAsStringArray("get/zebras/zebra", []string{})
	if len(zebra()) != 2 || zebra()[0] != "black" || zebra()[1] != "white" {
		t.Errorf("zebra should be [\"black\", \"white\"], is %v", zebra())
	}

	elephant := GetAsInt("get/elephant", -1)
	if elephant() != 2 {
		t.Errorf("elephant should be 2, is %d", elephant())
	}

	hot := GetAsBool("get/hot", false)
	if !hot() {
		t.Errorf("hot should be true, is %v", hot())
	}

	cold := GetAsBool("get/cold", true)
	if cold() {
		t.Errorf("cold should be false, is %v", cold())
	}

	err = parseAndSetConfig(`
  {
    "get": {
      "monkey": "3"
    }
  }
  `)
	if err != nil {
		t.Fatal(err)
	}

	if monkey() != "3" {
		t.Errorf("monkey should be 3, is %s", monkey())
	}

	// falls back to the active default value
	if elephant() != 0 {
		t.Errorf("elephant should be 0, is %d", elephant())
	}

	// falls back to the registered default value
	if !cold() {
		t.Errorf("cold should be true, is %v", cold())
	}

	// unregistered options return the fallback
	unknown := GetAsInt("get/unknown", 42)
	if unknown() != 42 {
		t.Errorf("unknown should be 42, is %d", unknown())
	}
}

func TestConcurrentGet(t *testing.T) {
	quickRegister(t, "concurrent/value", OptTypeInt, 1)

	value := Concurrent.GetAsInt("concurrent/value", -1)
	if value() != 1 {
		t.Fatalf("value should be 1, is %d", value())
	}

	err := SetConfigOption("concurrent/value", 5)
	if err != nil {
		t.Fatal(err)
	}
	if value() != 5 {
		t.Errorf("value should be 5, is %d", value())
	}

	err = SetConfigOption("concurrent/value", "five")
	if err == nil {
		t.Error("setting a string on an int option should fail")
	}
	if value() != 5 {
		t.Errorf("value should still be 5, is %d", value())
	}
}

func TestReleaseLevel(t *testing.T) {
	err := Register(&Option{
		Name:           "experimental",
		Key:            "release/experimental",
		Description:    "test config",
		ReleaseLevel:   ReleaseLevelExperimental,
		ExpertiseLevel: ExpertiseLevelDeveloper,
		OptType:        OptTypeString,
		DefaultValue:   "default",
	})
	if err != nil {
		t.Fatal(err)
	}
	experimental := GetAsString("release/experimental", "none")

	err = SetConfigOption("release/experimental", "user")
	if err != nil {
		t.Fatal(err)
	}
	if experimental() != "default" {
		t.Errorf("experimental option must not be active on stable release level, is %s", experimental())
	}

	err = SetConfigOption(releaseLevelKey, ReleaseLevelNameExperimental)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = SetConfigOption(releaseLevelKey, ReleaseLevelNameStable)
	}()
	if experimental() != "user" {
		t.Errorf("experimental option should be active on experimental release level, is %s", experimental())
	}
}

func BenchmarkGetAsStringCached(b *testing.B) {
	// Setup
	quickRegister(b, "bench/string", OptTypeString, "banana")
	monkey := GetAsString("bench/string", "no banana")

	// Reset timer for precise results
	b.ResetTimer()

	// Start benchmark
	for i := 0; i < b.N; i++ {
		monkey()
	}
}

func BenchmarkGetAsStringRefetch(b *testing.B) {
	// Setup
	quickRegister(b, "bench/string-refetch", OptTypeString, "banana")

	// Reset timer for precise results
	b.ResetTimer()

	// Start benchmark
	for i := 0; i < b.N; i++ {
		findStringValue("bench/string-refetch", "no banana")
	}
}
