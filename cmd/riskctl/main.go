// Command riskctl queries the risk gRPC service.
//
//	riskctl -addr localhost:50051 assess 100 100 100 100 50
//	riskctl -addr localhost:50051 -token $GRPC_AUTH_TOKEN user 6f1c...
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"artha-pay/internal/grpc_client"
)

func main() {
	addr := flag.String("addr", "localhost:50051", "risk service address")
	timeout := flag.Duration("timeout", 5*time.Second, "per-call timeout")
	token := flag.String("token", os.Getenv("GRPC_AUTH_TOKEN"), "shared secret sent as bearer token")
	flag.Parse()

	if flag.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "usage: riskctl [-addr host:port] [-token secret] assess <amount>... | user <user_id>")
		os.Exit(2)
	}

	logLevel := new(slog.LevelVar)
	logLevel.Set(slog.LevelWarn)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	client, err := grpc_client.NewRiskClient(*addr, *token, *timeout, logger)
	if err != nil {
		log.Fatalf("riskctl: %v", err)
	}
	defer client.Close()

	var out any
	switch cmd, args := flag.Arg(0), flag.Args()[1:]; cmd {
	case "assess":
		amounts := make([]float64, len(args))
		for i, a := range args {
			if amounts[i], err = strconv.ParseFloat(a, 64); err != nil {
				log.Fatalf("riskctl: bad amount %q: %v", a, err)
			}
		}
		out, err = client.Assess(context.Background(), amounts)
	case "user":
		userID, perr := uuid.Parse(args[0])
		if perr != nil {
			log.Fatalf("riskctl: bad user id %q: %v", args[0], perr)
		}
		out, err = client.AssessUser(context.Background(), userID)
	default:
		log.Fatalf("riskctl: unknown command %q", cmd)
	}
	if err != nil {
		log.Fatalf("riskctl: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("riskctl: %v", err)
	}
}
