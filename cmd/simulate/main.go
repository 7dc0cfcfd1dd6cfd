package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"saedam-be/pkg/companion"
	"saedam-be/pkg/companion/store"
	"saedam-be/pkg/conversation"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Interactive console client: talks to a running backend and exercises the
// full companion loop (greeting streak, turns, session end).
func main() {
	baseURL := flag.String("base-url", "http://localhost:3000", "backend base URL")
	userID := flag.String("user", "", "anonymous id (random when empty)")
	redisURL := flag.String("redis-url", "", "persist companion state in redis (empty keeps it in memory)")
	flag.Parse()

	id := *userID
	if id == "" {
		id = uuid.NewString()
	}

	var st store.StateStore = store.NewCacheStore()
	if *redisURL != "" {
		opts, err := redis.ParseURL(*redisURL)
		if err != nil {
			log.Fatalf("parse redis url: %v", err)
		}
		st = store.NewRedisStore(redis.NewClient(opts), id)
	}

	ctx := context.Background()
	comp, err := companion.New(ctx, id, st, conversation.NewHTTPProvider(*baseURL))
	if err != nil {
		log.Fatalf("init companion: %v", err)
	}

	fairyColor := color.New(color.FgMagenta)
	infoColor := color.New(color.FgCyan)
	errColor := color.New(color.FgRed)

	profile, err := comp.Greet(ctx, time.Now())
	if err != nil {
		log.Fatalf("greet: %v", err)
	}
	infoColor.Printf("새담이와 대화를 시작합니다 (user=%s)\n", id)
	infoColor.Printf("Lv.%d  %dpt  연속 %d일째 방문\n", profile.Level, profile.Points, profile.ConsecutiveDays)
	infoColor.Println(`명령: /end (세션 종료), /quit (종료)`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit":
			return
		case line == "/end":
			session, err := comp.EndConversation(ctx, false)
			if err != nil {
				errColor.Printf("세션 종료 실패: %v\n", err)
				continue
			}
			if session == nil {
				infoColor.Println("진행 중인 세션이 없습니다")
				continue
			}
			infoColor.Printf("세션 종료: 메시지 %d개, 호감도 +%d\n", len(session.Messages), session.AffectionGained)
		default:
			reply, err := comp.SendTurn(ctx, line)
			if err != nil {
				errColor.Printf("전송 실패: %v\n", err)
				continue
			}
			fairyColor.Printf("새담: %s\n", reply.Message)
			infoColor.Printf("  +%dpt → Lv.%d (%dpt)", reply.AffectionGained, reply.NewLevel, reply.NewPoints)
			if reply.CommunityUnlocked {
				infoColor.Print("  [커뮤니티 개방!]")
			}
			fmt.Println()
		}
	}
}
