package ui

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-salon/internal/config"
	"github.com/tartampluch/go-salon/internal/pages"
)

func loadLocale(t *testing.T, lang string) map[string]any {
	t.Helper()
	content, err := os.ReadFile(filepath.Join("locales", "active."+lang+".json"))
	require.NoError(t, err, "Must load active.%s.json", lang)

	var jsonMap map[string]any
	require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be valid")
	return jsonMap
}

// TestI18nIntegrity ensures that every translation key defined in config.go
// actually exists in the English locale file.
func TestI18nIntegrity(t *testing.T) {
	keysToCheck := []string{
		config.TKeyWinTitle,
		config.TKeyWinSettings,
		config.TKeyTitleAll,
		config.TKeyTitleMonth,
		config.TKeyTitleYear,
		config.TKeyTitleGeneric,
		config.TKeyFilterAll,
		config.TKeyFilterDay,
		config.TKeyFilterMonth,
		config.TKeyFilterYear,
		config.TKeyBtnExport,
		config.TKeyBtnSettings,
		config.TKeyBtnRefresh,
		config.TKeyBtnSave,
		config.TKeyBtnCancel,
		config.TKeyBtnBrowse,
		config.TKeyBtnDelete,
		config.TKeyDlgDelete,
		config.TKeyNotifDeleteErr,
		config.TKeyNotifExportOK,
		config.TKeyNotifExportErr,
		config.TKeyNotifNoData,
		config.TKeyNotifFetchErr,
		config.TKeyLblBackend,
		config.TKeyLblToken,
		config.TKeyLblLanguage,
		config.TKeyLblPort,
		config.TKeyLblExportDir,
		config.TKeyLblRecords,
		config.TKeyLblTotal,
		config.TKeyLblFooter,
		config.TKeyLblSelectDay,
		config.TKeyLblSelectMonth,
		config.TKeyLblSelectYear,
		config.TKeyPhDay,
		config.TKeyErrPortReq,
		config.TKeyErrPortNum,
		config.TKeyErrPortRange,
		config.TKeyErrDayFormat,
	}
	for m := 1; m <= config.MonthsInYear; m++ {
		keysToCheck = append(keysToCheck, config.TKeyMonthPrefix+strconv.Itoa(m))
	}
	for _, def := range pages.Registry {
		keysToCheck = append(keysToCheck, pageKey(def.Route))
	}

	definedKeys := make(map[string]bool)
	for _, k := range keysToCheck {
		definedKeys[k] = true
	}

	jsonMap := loadLocale(t, config.DefaultLanguage)
	for key := range definedKeys {
		_, exists := jsonMap[key]
		assert.Truef(t, exists, "Key '%s' defined in config.go is missing in active.en.json", key)
	}

	// Orphan keys in JSON might be unused.
	for jsonKey := range jsonMap {
		if strings.HasPrefix(jsonKey, "_") {
			continue
		}
		if !definedKeys[jsonKey] {
			t.Logf("Warning: Key '%s' exists in JSON but is not checked in the test suite (might be unused)", jsonKey)
		}
	}
}

// TestI18nLocalesInSync ensures every supported language translates the same keys.
func TestI18nLocalesInSync(t *testing.T) {
	reference := loadLocale(t, config.DefaultLanguage)
	for _, lang := range config.SupportedLanguages {
		other := loadLocale(t, lang)
		for key := range reference {
			assert.Containsf(t, other, key, "active.%s.json lacks '%s'", lang, key)
		}
		assert.Lenf(t, other, len(reference), "active.%s.json has extra keys", lang)
	}
}

func TestTranslator_Languages(t *testing.T) {
	tr := NewTranslator("")
	assert.ElementsMatch(t, config.SupportedLanguages, tr.Languages)
	assert.Equal(t, config.DefaultLanguage, tr.Language())

	assert.Equal(t, "Settings", tr.Msg(config.TKeyWinSettings))
	tr.SetLanguage("fr")
	assert.Equal(t, "Paramètres", tr.Msg(config.TKeyWinSettings))

	assert.Equal(t, "no_such_key", tr.Msg("no_such_key"), "missing keys fall back to the key")

	var nilTr *Translator
	assert.Equal(t, config.TKeyBtnSave, nilTr.Msg(config.TKeyBtnSave))
}
