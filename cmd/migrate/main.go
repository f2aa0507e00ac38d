package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"clinicstock/config"
	"clinicstock/internal/pkg/database"
	"clinicstock/migrations"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Aviso: .env não encontrado. Carregando configs apenas do ambiente do sistema: %v", err)
	}

	cfg := config.LoadConfig()

	var (
		migrationsDir string
		verbose       bool
	)
	flag.StringVar(&migrationsDir, "dir", "", "diretório com as migrações (vazio = migrações embutidas no binário)")
	flag.BoolVar(&verbose, "v", false, "log detalhado do goose")
	flag.Parse()

	db, err := database.NewPostgresDB(context.Background(), cfg.DatabaseURL, database.DefaultPoolConfig())
	if err != nil {
		log.Fatalf("goose: falha ao conectar no DB: %v\n", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Fatalf("goose: falha ao fechar o DB: %v\n", err)
		}
	}()

	if !verbose {
		goose.SetLogger(goose.NopLogger())
	}
	if migrationsDir == "" {
		goose.SetBaseFS(migrations.FS)
		migrationsDir = "."
	}
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("goose: %v", err)
	}

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}

	command := arguments[0]
	var args []string
	if len(arguments) > 1 {
		args = arguments[1:]
	}

	if err := goose.RunContext(context.Background(), command, db.DB, migrationsDir, args...); err != nil {
		log.Fatalf("goose %v: %v", command, err)
	}

	fmt.Printf("goose %s success\n", command)
}
