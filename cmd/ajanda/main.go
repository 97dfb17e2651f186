package main

import (
	"fmt"
	"os"
	"time"

	"ajanda/internal/config"
	"ajanda/internal/notify"
	"ajanda/internal/smart"
	"ajanda/internal/storage"
	"ajanda/internal/task"
	"ajanda/internal/ui"
)

func main() {
	cfg, err := config.LoadOrCreate(config.ResolveConfigPath())
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	kv, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Printf("failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	store := task.NewStore(kv, storage.KeyTasks)
	parser := smart.NewGeminiParser(cfg.Gemini.APIKey, cfg.Gemini.Model)
	scanner := notify.NewScanner(store, notify.NewDesktop(), time.Duration(cfg.NotifyLeadMins)*time.Minute)

	if err := ui.Run(store, kv, cfg, parser, scanner); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}
