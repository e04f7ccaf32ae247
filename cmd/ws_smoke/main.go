package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strconv"
	"time"

	"tasktracker/internal/logger"

	"github.com/gorilla/websocket"
)

// ws_smoke runs against a live server: it registers (or reuses) a smoke user,
// logs in, opens /ws, creates a task and prints the pushed event.
func main() {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	base := "http://127.0.0.1:" + port

	jar, _ := cookiejar.New(nil)
	client := &http.Client{Jar: jar, Timeout: 5 * time.Second}

	creds := map[string]string{"username": "smoke", "password": "smoke-password"}
	// 409 just means the user exists from a previous run
	post(client, base+"/auth/register", creds)
	if status := post(client, base+"/auth/login", creds); status != http.StatusCreated {
		logger.Fatal("login failed", "status", status)
	}

	u, _ := url.Parse(base)
	header := http.Header{}
	for _, ck := range jar.Cookies(u) {
		header.Add("Cookie", ck.String())
	}

	conn, _, err := websocket.DefaultDialer.Dial("ws://127.0.0.1:"+port+"/ws", header)
	if err != nil {
		logger.Fatal("dial ws", "error", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	if _, msg, err := conn.ReadMessage(); err != nil {
		logger.Fatal("read ready", "error", err)
	} else {
		logger.Info("ws open", "msg", string(msg))
	}

	title := "smoke " + strconv.FormatInt(time.Now().Unix(), 10)
	if status := post(client, base+"/api/tasks", map[string]string{"title": title}); status != http.StatusCreated {
		logger.Fatal("create task failed", "status", status)
	}

	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		logger.Fatal("read event", "error", err)
	}
	fmt.Println(string(msg))
	logger.Info("smoke test finished")
}

func post(client *http.Client, url string, body any) int {
	raw, _ := json.Marshal(body)
	res, err := client.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		logger.Fatal("request failed", "url", url, "error", err)
	}
	defer res.Body.Close()
	return res.StatusCode
}
