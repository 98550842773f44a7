package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Theme — тема оформления клиента.
type Theme int8

const (
	ThemeDark Theme = iota
	ThemeLight
)

func (t Theme) String() string {
	switch t {
	case ThemeLight:
		return "light"
	default:
		return "dark"
	}
}

// ParseTheme — единственная точка разбора строки в Theme.
func ParseTheme(s string) (Theme, error) {
	switch s {
	case "dark":
		return ThemeDark, nil
	case "light":
		return ThemeLight, nil
	default:
		return ThemeDark, fmt.Errorf("unknown theme %q: allowed values are dark, light", s)
	}
}

// Language — язык интерфейса.
type Language int8

const (
	LanguageEnglish Language = iota
	LanguageRussian
)

func (l Language) String() string {
	switch l {
	case LanguageRussian:
		return "russian"
	default:
		return "english"
	}
}

// ParseLanguage — единственная точка разбора строки в Language.
func ParseLanguage(s string) (Language, error) {
	switch s {
	case "english":
		return LanguageEnglish, nil
	case "russian":
		return LanguageRussian, nil
	default:
		return LanguageEnglish, fmt.Errorf("unknown language %q: allowed values are english, russian", s)
	}
}

// Settings — пользовательские настройки; создаются с дефолтами при регистрации.
type Settings struct {
	UserID    uuid.UUID
	Theme     Theme
	Language  Language
	CreatedAt time.Time
	UpdatedAt time.Time
}
