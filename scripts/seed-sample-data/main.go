// Populates a catalog database with a small set of linked sample records,
// for local development and demos.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-catalog/internal/store"
	"github.com/goliatone/go-catalog/pkg/record"
	"github.com/goliatone/go-catalog/pkg/relation"
)

func main() {
	dbPath := flag.String("db", envOr("CATALOG_DB", "catalog.db"), "path to the SQLite database")
	flag.Parse()

	ctx := context.Background()
	st, err := store.Open(*dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	records := []record.Record{
		scheme("Dublin Core", "<p>A basic vocabulary of fifteen properties for resource description.</p>",
			"https://www.dublincore.org/specifications/dublin-core/"),
		scheme("DataCite Metadata Schema", "<p>Properties for the identification and citation of research data.</p>",
			"https://schema.datacite.org/"),
		organization("Dublin Core Metadata Initiative", "https://www.dublincore.org/"),
		organization("DataCite", "https://datacite.org/"),
	}
	for i := range records {
		if err := st.Save(ctx, &records[i]); err != nil {
			log.Fatalf("save %s: %v", records[i].Name(), err)
		}
		fmt.Printf("saved %-8s %s\n", records[i].ID(), records[i].Name())
	}

	triples := []relation.Triple{
		{Subject: "msc:m1", Predicate: relation.PredicateMaintainer, Object: "msc:g1"},
		{Subject: "msc:m2", Predicate: relation.PredicateMaintainer, Object: "msc:g2"},
		{Subject: "msc:m2", Predicate: relation.PredicateParentScheme, Object: "msc:m1"},
	}
	if err := st.Add(ctx, triples); err != nil {
		log.Fatalf("add relations: %v", err)
	}
	fmt.Printf("added %d relations\n", len(triples))
}

func scheme(title, description, url string) record.Record {
	rec := record.New(record.SeriesScheme)
	rec.Fields["title"] = title
	rec.Fields["description"] = description
	rec.Fields["locations"] = []any{
		map[string]any{"url": url, "type": "website"},
	}
	return rec
}

func organization(name, url string) record.Record {
	rec := record.New(record.SeriesOrganization)
	rec.Fields["name"] = name
	rec.Fields["locations"] = []any{
		map[string]any{"url": url, "type": "website"},
	}
	return rec
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
