package service

import (
	"fmt"
	"log"

	"github.com/user/streamvue/internal/event"
	"github.com/user/streamvue/internal/model"
	"github.com/user/streamvue/internal/repository"
)

// 允许的偏好取值
var (
	supportedLanguages = map[string]bool{"en": true, "es": true, "fr": true, "de": true, "ja": true, "zh": true}
	supportedThemes    = map[string]bool{"light": true, "dark": true, "system": true}
)

// SettingsService 偏好设置服务
type SettingsService struct {
	repo *repository.SettingRepository
	bus  *event.Bus
}

// NewSettingsService 创建偏好设置服务
func NewSettingsService(repo *repository.SettingRepository, bus *event.Bus) *SettingsService {
	return &SettingsService{repo: repo, bus: bus}
}

// Language 当前界面语言，读取失败回退默认值
func (s *SettingsService) Language() string {
	value, err := s.repo.Get(model.SettingLanguage, model.DefaultLanguage)
	if err != nil {
		log.Printf("[Settings] 读取语言设置失败: %v", err)
		return model.DefaultLanguage
	}
	return value
}

// SetLanguage 设置界面语言
func (s *SettingsService) SetLanguage(lang string) error {
	if !supportedLanguages[lang] {
		return fmt.Errorf("不支持的语言: %s", lang)
	}
	if err := s.repo.Set(model.SettingLanguage, lang); err != nil {
		return err
	}
	s.bus.Publish(event.TopicSettings, map[string]string{"key": model.SettingLanguage, "value": lang})
	return nil
}

// Theme 当前主题
func (s *SettingsService) Theme() string {
	value, err := s.repo.Get(model.SettingTheme, model.DefaultTheme)
	if err != nil {
		log.Printf("[Settings] 读取主题设置失败: %v", err)
		return model.DefaultTheme
	}
	return value
}

// SetTheme 设置主题
func (s *SettingsService) SetTheme(theme string) error {
	if !supportedThemes[theme] {
		return fmt.Errorf("不支持的主题: %s", theme)
	}
	if err := s.repo.Set(model.SettingTheme, theme); err != nil {
		return err
	}
	s.bus.Publish(event.TopicSettings, map[string]string{"key": model.SettingTheme, "value": theme})
	return nil
}
