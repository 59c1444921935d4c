// Command hotelbot is a minimal example wiring of the session core: it
// builds a Config from command-line flags, connects with a supplied
// token, and logs status transitions. Account loading, proxy rotation,
// and dashboards are the caller's concern, not this package's.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"hotelcore"
)

func main() {
	host := flag.String("host", "", "game server host")
	port := flag.Int("port", 30000, "game server port")
	token := flag.String("token", "", "opaque SSO ticket")
	flag.Parse()

	if *host == "" || *token == "" {
		log.Fatal("hotelbot: -host and -token are required")
	}

	cfg := hotelcore.Default()
	cfg.Host = *host
	cfg.Port = *port

	sess := hotelcore.NewSession(cfg)
	sess.SetLogger(log.New(os.Stderr, "", log.LstdFlags))
	sess.SetOnStatus(func(st hotelcore.State, reason string) {
		log.Printf("[hotelbot] status=%s reason=%q", st, reason)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sess.Connect(ctx, *token); err != nil {
		log.Fatalf("hotelbot: connect: %v", err)
	}

	select {}
}
