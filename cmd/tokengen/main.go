// Command tokengen mints an organizer (panitia) access token signed with
// JWT_SECRET, for operators who manage auctions through the API.
//
//	tokengen -sub panitia-ahmad -ttl 12h
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/lelang-masjid/internal/utils"
)

func main() {
	sub := flag.String("sub", "", "organizer id placed in the sub claim (required)")
	role := flag.String("role", utils.RoleOrganizer, "role claim")
	ttl := flag.Duration("ttl", 8*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	if *sub == "" {
		flag.Usage()
		os.Exit(2)
	}

	tok, err := utils.NewAccessToken(secret, *sub, *role, *ttl)
	if err != nil {
		log.Fatalf("mint token: %v", err)
	}
	fmt.Println(tok.Token)
	fmt.Fprintf(os.Stderr, "expires %s\n", tok.Exp.Format(time.RFC3339))
}
