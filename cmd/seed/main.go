package main

import (
	"fmt"
	"os"

	"github.com/arnavshah/shift-lookup-go/internal/config"
	"github.com/arnavshah/shift-lookup-go/pkg/database"
	"github.com/arnavshah/shift-lookup-go/pkg/dataset"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	var ds *dataset.Dataset
	if len(os.Args) > 1 {
		ds, err = dataset.LoadFile(os.Args[1])
	} else {
		ds, err = dataset.Default()
	}
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	if !cfg.UseDatabase() {
		cfg.DataPath = "shifts.db"
	}
	db, err := database.InitDB(cfg.DatabaseURL, cfg.DataPath)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	if err := database.Import(db, ds); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d names, %d shifts and %d note blocks\n", len(ds.Roster), len(ds.Shifts), len(ds.Notes))
}
