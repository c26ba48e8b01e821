package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"arabianx/db"
	"arabianx/models"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
)

// One-off maintenance tasks run against the live database:
//
//	maintenance indexes                    rebuild indexes, dropping the legacy username index
//	maintenance promote -email X -role Y   change a user's role
//	maintenance backfill-notes             give note-less products a default pyramid
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "indexes":
		err = rebuildIndexes(ctx)
	case "promote":
		err = promote(ctx, os.Args[2:])
	case "backfill-notes":
		err = backfillNotes(ctx)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("❌ %s: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: maintenance <indexes|promote|backfill-notes> [flags]")
}

// rebuildIndexes drops the username index left behind by an earlier schema
// (it rejected every second signup once the field went away) and recreates
// the current set.
func rebuildIndexes(ctx context.Context) error {
	if _, err := db.UserCollection.Indexes().DropOne(ctx, "username_1"); err != nil {
		log.Printf("legacy username index not dropped (may not exist): %v", err)
	}
	if err := db.EnsureIndexes(ctx); err != nil {
		return err
	}
	log.Println("✅ indexes rebuilt")
	return nil
}

func promote(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("promote", flag.ExitOnError)
	email := fs.String("email", "", "user email")
	role := fs.String("role", models.RoleAdmin, "target role")
	fs.Parse(args)

	if *email == "" {
		return fmt.Errorf("missing -email")
	}
	if *role != models.RoleUser && *role != models.RoleAdmin && *role != models.RoleSuperadmin {
		return fmt.Errorf("unknown role %q", *role)
	}

	res, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"email": *email},
		bson.M{"$set": bson.M{"role": *role}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("no user with email %s", *email)
	}
	log.Printf("✅ %s is now %s", *email, *role)
	return nil
}

// backfillNotes fills the fragrance pyramid for catalog entries created
// before the notes field existed.
func backfillNotes(ctx context.Context) error {
	defaultNotes := models.FragranceNotes{
		Head:  []string{"Bergamota", "Azafrán"},
		Heart: []string{"Oud", "Rosa"},
		Base:  []string{"Ámbar", "Almizcle"},
	}

	filter := bson.M{"$or": []bson.M{
		{"notes": bson.M{"$exists": false}},
		{"notes.head": bson.M{"$size": 0}, "notes.heart": bson.M{"$size": 0}, "notes.base": bson.M{"$size": 0}},
	}}

	res, err := db.ProductCollection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{
		"notes":     defaultNotes,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return err
	}
	log.Printf("✅ backfilled notes on %d products", res.ModifiedCount)
	return nil
}
