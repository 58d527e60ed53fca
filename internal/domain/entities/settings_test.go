package entities

import "testing"

func TestSettingsBagLang(t *testing.T) {
	if lang := (SettingsBag{}).Lang(); lang != "EN" {
		t.Errorf("Lang = %q; want the EN default", lang)
	}
	if lang := (SettingsBag{"lang": "DE"}).Lang(); lang != "DE" {
		t.Errorf("Lang = %q; want DE", lang)
	}
	// Wrong types and empty strings fall back to the default
	if lang := (SettingsBag{"lang": 7}).Lang(); lang != "EN" {
		t.Errorf("Lang = %q; want EN for a non-string value", lang)
	}
	if lang := (SettingsBag{"lang": ""}).Lang(); lang != "EN" {
		t.Errorf("Lang = %q; want EN for an empty value", lang)
	}
}

func TestSettingsBagTypedGetters(t *testing.T) {
	bag := SettingsBag{
		"volume":   float64(80), // as JSON decoding produces
		"count":    3,
		"autoplay": true,
		"prefix":   "!",
	}

	if v, ok := bag.GetInt("volume"); !ok || v != 80 {
		t.Errorf("GetInt(volume) = %d, %v; want 80", v, ok)
	}
	if v, ok := bag.GetInt("count"); !ok || v != 3 {
		t.Errorf("GetInt(count) = %d, %v; want 3", v, ok)
	}
	if v, ok := bag.GetBool("autoplay"); !ok || !v {
		t.Errorf("GetBool(autoplay) = %v, %v; want true", v, ok)
	}
	if v, ok := bag.GetString("prefix"); !ok || v != "!" {
		t.Errorf("GetString(prefix) = %q, %v; want !", v, ok)
	}

	if _, ok := bag.GetInt("prefix"); ok {
		t.Error("GetInt on a string should miss")
	}
	if _, ok := bag.GetBool("missing"); ok {
		t.Error("GetBool on an absent key should miss")
	}
}

func TestSettingsBagClone(t *testing.T) {
	bag := SettingsBag{"lang": "EN"}
	clone := bag.Clone()
	clone["lang"] = "FR"

	if bag.Lang() != "EN" {
		t.Error("mutating a clone must not touch the original")
	}
}
