package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/steelify/catalog-backend/config"
	"github.com/steelify/catalog-backend/internal/app/model"
	"github.com/steelify/catalog-backend/internal/app/repository"
	"github.com/steelify/catalog-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports product combinations from an XLSX sheet. Expected columns:
// Product | Material | Grade | Shape | Length | Thickness | Price
// The first three are catalog names and must already exist; rows referencing
// unknown names are skipped and counted.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	catalogRepo := repository.NewCatalogRepository(db.GetDB())
	combinationRepo := repository.NewCombinationRepository(db.GetDB())

	lookup, err := buildCatalogLookup(catalogRepo)
	if err != nil {
		log.Fatal("Failed to load reference catalogs:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	combinations, skipped, err := readCombinationsFromXLSX(filePath, lookup)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total combinations to import: %d (skipped %d rows)\n", len(combinations), skipped)
	if len(combinations) == 0 {
		fmt.Println("Nothing to import.")
		return
	}

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	for start := 0; start < len(combinations); start += batchSize {
		end := start + batchSize
		if end > len(combinations) {
			end = len(combinations)
		}
		batch := combinations[start:end]
		if err := combinationRepo.CreateBatch(batch); err != nil {
			log.Fatal("Failed to bulk create combinations:", err)
		}
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total combinations imported: %d\n", len(combinations))
}

// catalogLookup maps catalog names to their records for id resolution.
type catalogLookup struct {
	products  map[string]model.Product
	materials map[string]model.Material
	grades    map[string]model.Grade
}

func buildCatalogLookup(catalogRepo repository.CatalogRepository) (*catalogLookup, error) {
	products, err := catalogRepo.FindAllProducts()
	if err != nil {
		return nil, err
	}
	materials, err := catalogRepo.FindAllMaterials()
	if err != nil {
		return nil, err
	}
	grades, err := catalogRepo.FindAllGrades()
	if err != nil {
		return nil, err
	}

	lookup := &catalogLookup{
		products:  make(map[string]model.Product, len(products)),
		materials: make(map[string]model.Material, len(materials)),
		grades:    make(map[string]model.Grade, len(grades)),
	}
	for _, p := range products {
		lookup.products[p.Name] = p
	}
	for _, m := range materials {
		lookup.materials[m.Name] = m
	}
	for _, g := range grades {
		lookup.grades[g.Name] = g
	}
	return lookup, nil
}

func readCombinationsFromXLSX(filePath string, lookup *catalogLookup) ([]model.ProductCombination, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no data found in XLSX file")
	}

	var combinations []model.ProductCombination
	skippedCount := 0

	// First row is the header
	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 3 {
			skippedCount++
			continue
		}

		productName := strings.TrimSpace(row[0])
		materialName := strings.TrimSpace(row[1])
		gradeName := strings.TrimSpace(row[2])

		if productName == "" || materialName == "" || gradeName == "" {
			skippedCount++
			continue
		}

		product, okProduct := lookup.products[productName]
		material, okMaterial := lookup.materials[materialName]
		grade, okGrade := lookup.grades[gradeName]
		if !okProduct || !okMaterial || !okGrade {
			fmt.Printf("Row %d skipped: unknown reference (%s / %s / %s)\n", i+1, productName, materialName, gradeName)
			skippedCount++
			continue
		}

		combinations = append(combinations, model.ProductCombination{
			ProductID:        product.ID,
			MaterialID:       material.ID,
			GradeID:          grade.ID,
			FinalProductName: model.ComposeFinalName(material.Name, grade.Name, product.Name),
			Shape:            cell(row, 3),
			Length:           cell(row, 4),
			Thickness:        cell(row, 5),
			Price:            cell(row, 6),
		})
	}

	return combinations, skippedCount, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}
