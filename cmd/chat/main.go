package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"messenger-backend/client"
)

// Minimal terminal chat client: logs in, picks a peer, then runs the sync
// engine against the conversation while reading lines from stdin.
func main() {
	baseURL := flag.String("url", "http://localhost:8080", "server base URL")
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "account password")
	peerID := flag.Int64("peer", 0, "peer user id (0 lists contacts)")
	queryToken := flag.Bool("query-token", false, "send the token as a query parameter")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: chat -email you@example.com -password secret [-peer id]")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session := client.NewSession(*baseURL)
	session.UseQueryToken = *queryToken
	if err := session.Login(ctx, *email, *password); err != nil {
		fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
		os.Exit(1)
	}
	defer session.Logout(context.Background())

	if *peerID == 0 {
		users, err := session.Users(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to list contacts: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Contacts:")
		for _, u := range users {
			fmt.Printf("  %4d  %-24s %s\n", u.ID, u.Name, u.Status)
		}
		fmt.Println("Re-run with -peer <id> to open a conversation.")
		return
	}

	engine := client.NewEngine(session, *peerID)
	engine.OnUpdate = func(view []client.Entry) {
		render(view, session.SelfID())
	}

	typing := client.NewTypingIndicator()
	typing.OnChange = func(active bool) {
		if active {
			fmt.Println("(typing...)")
		}
	}
	defer typing.Stop()

	go engine.Run(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("Type a message and press enter. /quit to exit.")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		typing.InputChanged(line)
		if line == "/quit" {
			return
		}
		if line == "" {
			continue
		}
		if err := engine.Send(ctx, line); err != nil {
			fmt.Fprintf(os.Stderr, "send failed: %v\n", err)
		}
		typing.InputChanged("")
	}
}

func render(view []client.Entry, selfID int64) {
	fmt.Print("\033[2J\033[H")
	for _, group := range client.GroupByDay(view, time.Now()) {
		fmt.Printf("--- %s ---\n", group.Label)
		for _, entry := range group.Entries {
			who := entry.SenderName
			if entry.SenderID == selfID {
				who = "me"
			}
			suffix := ""
			switch {
			case entry.Failed:
				suffix = " [failed]"
			case entry.Pending:
				suffix = " [sending]"
			case entry.SenderID == selfID && entry.IsRead:
				suffix = " [read]"
			}
			fmt.Printf("[%s] %s: %s%s\n", entry.CreatedAt.Local().Format("15:04"), who, entry.Content, suffix)
		}
	}
	fmt.Print("> ")
}
