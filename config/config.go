package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Backend struct {
		// 生成后端地址，例如 http://localhost:8000
		Addr string `yaml:"addr"`
		// DemoFallback 开启后，图片预览 / 自动提示词 / 混音在后端失败时
		// 使用本地模拟结果代替报错；音频、视频、合并始终直接报错
		DemoFallback bool `yaml:"demo_fallback"`
	} `yaml:"backend"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

var AppConfig *Config

func InitConfig() {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		log.Fatalf("配置文件读取失败: %v", err)
	}
	defer f.Close()
	decoder := yaml.NewDecoder(f)
	AppConfig = &Config{}
	if err := decoder.Decode(AppConfig); err != nil {
		log.Fatalf("配置文件解析失败: %v", err)
	}
	if AppConfig.Backend.Addr == "" {
		AppConfig.Backend.Addr = "http://localhost:8000"
	}
}
