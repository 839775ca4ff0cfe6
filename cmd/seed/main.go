package main

import (
	"encoding/json"
	"log"
	"time"

	"agency-configurator-be/internal/config"
	"agency-configurator-be/internal/model"
	"agency-configurator-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func price(v float64) *float64 { return &v }

var demoOptions = []model.Option{
	{Id: "pack-vitrine", Name: "Site vitrine", Description: "Jusqu'à 5 pages, design sur mesure", Category: "design", Type: "pack_base", PriceMin: price(1500), PriceMax: price(2500), IsMandatory: true, SortOrder: 1},
	{Id: "pack-ecommerce", Name: "Boutique en ligne", Description: "Catalogue, panier et paiement", Category: "ecommerce", Type: "pack_base", PriceMin: price(3500), PriceMax: price(6000), SortOrder: 2},
	{Id: "seo-basic", Name: "Référencement de base", Description: "Balises, sitemap, Search Console", Category: "seo", Type: "fonctionnalite", Price: 350, SortOrder: 10},
	{Id: "hosting", Name: "Hébergement et maintenance (1 an)", Category: "infrastructure", Type: "fonctionnalite", Price: 240, SortOrder: 11},
	{Id: "blog", Name: "Blog", Description: "Module d'articles avec catégories", Category: "contenu", Type: "fonctionnalite", PriceMin: price(400), PriceMax: price(700), SortOrder: 12},
	{Id: "ecommerce", Name: "Fiches produits avancées", Category: "ecommerce", Type: "fonctionnalite", PriceMin: price(600), PriceMax: price(1200), SortOrder: 13},
	{Id: "payment", Name: "Paiement en ligne", Category: "ecommerce", Type: "fonctionnalite", Price: 450, SortOrder: 14},
	{Id: "no-automation", Name: "Formulaire de contact simple", Category: "contenu", Type: "fonctionnalite", Price: 0, SortOrder: 15},
	{Id: "crm-sync", Name: "Synchronisation CRM", Description: "Envoi des contacts vers votre CRM", Category: "automatisation", Type: "automatisation", SortOrder: 20},
	{Id: "chatbot", Name: "Chatbot de qualification", Category: "automatisation", Type: "automatisation", SortOrder: 21},
}

type demoQuestion struct {
	label       string
	category    string
	cardinality string
	answers     map[string][]string
}

var demoQuestions = []demoQuestion{
	{
		label:       "Quel type de structure représentez-vous ?",
		category:    "profil",
		cardinality: "single",
		answers: map[string][]string{
			"PME":          {"seo-basic", "hosting"},
			"Association":  {"pack-vitrine", "hosting", "no-automation"},
			"Grand compte": {"seo-basic", "hosting", "crm-sync"},
		},
	},
	{
		label:       "Quel est votre budget ?",
		category:    "budget",
		cardinality: "single",
		answers: map[string][]string{
			"Budget serré": {"hosting", "no-automation"},
			"Confortable":  {"blog", "crm-sync"},
		},
	},
	{
		label:       "Quels sont vos objectifs ?",
		category:    "objectifs",
		cardinality: "multiple",
		answers: map[string][]string{
			"Vendre en ligne": {"pack-ecommerce", "ecommerce", "payment"},
			"Informer":        {"pack-vitrine", "blog"},
			"Automatiser":     {"crm-sync", "chatbot"},
		},
	},
}

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.DefaultOptions())
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding option catalog...")
	seedOptions(db)

	color.Cyan("Seeding questionnaire...")
	seedQuestionnaire(db)

	color.Green("Seeding completed!")
}

func seedOptions(db *gorm.DB) {
	now := time.Now().UTC()
	for _, o := range demoOptions {
		var existing model.Option
		if err := db.Where("id = ?", o.Id).First(&existing).Error; err == nil {
			color.Yellow("Option '%s' already exists, skipping...", o.Id)
			continue
		}

		o.IsActive = true
		o.CreatedAt = now
		o.UpdatedAt = now
		if err := db.Create(&o).Error; err != nil {
			color.Red("Error creating option '%s': %v", o.Id, err)
			continue
		}
		color.Green("Created option: %s (%s)", o.Name, o.Id)
	}
}

func seedQuestionnaire(db *gorm.DB) {
	now := time.Now().UTC()
	for i, q := range demoQuestions {
		var existing model.Question
		if err := db.Where("label = ?", q.label).First(&existing).Error; err == nil {
			color.Yellow("Question '%s' already exists, skipping...", q.label)
			continue
		}

		question := model.Question{
			Id:          uuid.New(),
			Label:       q.label,
			Category:    q.category,
			Cardinality: q.cardinality,
			SortOrder:   i + 1,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
			order := 0
			for value, ids := range q.answers {
				order++
				raw, _ := json.Marshal(ids)
				answer := model.Answer{
					Id:                 uuid.New(),
					QuestionId:         question.Id,
					Value:              value,
					SortOrder:          order,
					RecommendedOptions: string(raw),
					CreatedAt:          now,
					UpdatedAt:          now,
				}
				if err := tx.Create(&answer).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			color.Red("Error creating question '%s': %v", q.label, err)
			continue
		}
		color.Green("Created question: %s (%d answers)", q.label, len(q.answers))
	}
}
