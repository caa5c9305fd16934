// Terminal client for the GameHub command server: a menu loop that opens one
// connection per request, authenticating first when credentials are given and
// reusing the issued session token afterwards.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"gamehub/internal/api/protocol"
)

type client struct {
	addr     string
	username string
	password string
	token    string
}

func main() {
	addr := flag.String("addr", "127.0.0.1:5000", "Server address")
	username := flag.String("user", "", "Username for the authentication gate")
	password := flag.String("pass", "", "Password for the authentication gate")
	flag.Parse()

	c := &client{addr: *addr, username: *username, password: *password}
	stdin := bufio.NewScanner(os.Stdin)

	fmt.Println("GameHub client connected to", c.addr)
	for {
		fmt.Println("\nChoose an action:")
		fmt.Println("1. Add user")
		fmt.Println("2. Add game")
		fmt.Println("3. Create rental")
		fmt.Println("4. Return rental")
		fmt.Println("5. Update stock")
		fmt.Println("6. Show dashboard")
		fmt.Println("7. Exit")

		choice := prompt(stdin, "Enter choice (1-7): ")
		switch choice {
		case "1":
			name := prompt(stdin, "Enter user name: ")
			email := prompt(stdin, "Enter email (optional): ")
			c.send(&protocol.Request{Action: protocol.ActionAddUser, Name: name, Email: email})
		case "2":
			title := prompt(stdin, "Enter game title: ")
			stock, ok := promptInt(stdin, "Enter stock (default 1): ", true)
			req := &protocol.Request{Action: protocol.ActionAddGame, Title: title}
			if ok {
				s := int(stock)
				req.Stock = &s
			}
			c.send(req)
		case "3":
			userID, ok1 := promptInt(stdin, "Enter user ID: ", false)
			gameID, ok2 := promptInt(stdin, "Enter game ID: ", false)
			if !ok1 || !ok2 {
				fmt.Println("Invalid input. IDs must be numbers.")
				continue
			}
			c.send(&protocol.Request{Action: protocol.ActionCreateRental, UserID: userID, GameID: gameID})
		case "4":
			rentalID, ok := promptInt(stdin, "Enter rental ID: ", false)
			if !ok {
				fmt.Println("Invalid input. ID must be a number.")
				continue
			}
			c.send(&protocol.Request{Action: protocol.ActionReturnRental, RentalID: rentalID})
		case "5":
			gameID, ok1 := promptInt(stdin, "Enter game ID: ", false)
			stock, ok2 := promptInt(stdin, "Enter new stock: ", false)
			if !ok1 || !ok2 {
				fmt.Println("Invalid input. Values must be numbers.")
				continue
			}
			s := int(stock)
			c.send(&protocol.Request{Action: protocol.ActionUpdateStock, GameID: gameID, Stock: &s})
		case "6":
			c.showDashboard()
		case "7":
			fmt.Println("Exiting client.")
			return
		default:
			fmt.Println("Invalid choice. Please try again.")
		}
	}
}

func prompt(stdin *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !stdin.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(stdin.Text())
}

func promptInt(stdin *bufio.Scanner, label string, optional bool) (int64, bool) {
	text := prompt(stdin, label)
	if text == "" && optional {
		return 0, false
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// send performs one request/response exchange and prints the response.
func (c *client) send(req *protocol.Request) *protocol.Response {
	resp, err := c.exchange(req)
	if err != nil {
		fmt.Println("Error:", err)
		return nil
	}
	out, err := protocol.MarshalIndent(resp)
	if err != nil {
		fmt.Println("Error:", err)
		return nil
	}
	fmt.Println("\n--- Server Response ---")
	fmt.Println(string(out))
	fmt.Println("-----------------------")
	return resp
}

func (c *client) showDashboard() {
	resp, err := c.exchange(&protocol.Request{Action: protocol.ActionListDashboard})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if resp.Status != protocol.StatusSuccess {
		fmt.Println("Error:", resp.Message)
		return
	}

	fmt.Println("\n=== USERS ===")
	for _, u := range resp.Users {
		fmt.Printf("ID: %d, Name: %s\n", u.UserID, u.Name)
	}
	fmt.Println("\n=== GAMES ===")
	for _, g := range resp.Games {
		fmt.Printf("ID: %d, Title: %s, Stock: %d, Available: %v\n", g.GameID, g.Title, g.Stock, g.Available)
	}
	fmt.Println("\n=== RENTALS ===")
	for _, r := range resp.Rentals {
		fmt.Printf("Rental ID: %d, User ID: %d, Game ID: %d, Returned: %v, Late Fee: $%d, Due: %s\n",
			r.RentalID, r.UserID, r.GameID, r.Returned, r.LateFee, r.DueDate)
	}
}

// exchange opens a fresh connection, runs the auth preamble when credentials
// are configured and performs one command round trip.
func (c *client) exchange(req *protocol.Request) (*protocol.Response, error) {
	conn, err := net.Dial("tcp", c.addr)
	if err != nil {
		return nil, fmt.Errorf("could not connect to the server: %w", err)
	}
	defer conn.Close()

	dec := protocol.NewDecoder(conn)

	if c.username != "" || c.token != "" {
		auth := &protocol.Request{Type: protocol.TypeAuth}
		if c.token != "" {
			auth.Token = c.token
		} else {
			auth.Username = c.username
			auth.Password = c.password
		}
		if err := writeRequest(conn, auth); err != nil {
			return nil, err
		}
		var authResp protocol.Response
		if err := dec.Decode(&authResp); err != nil {
			return nil, fmt.Errorf("no auth response from server: %w", err)
		}
		if authResp.Status != protocol.StatusOK {
			// A stale token is retried once with the password pair.
			if c.token != "" && c.username != "" {
				c.token = ""
				return c.exchange(req)
			}
			return nil, fmt.Errorf("authentication failed: %s", authResp.Message)
		}
		if authResp.Token != "" {
			c.token = authResp.Token
		}
	}

	if err := writeRequest(conn, req); err != nil {
		return nil, err
	}
	var resp protocol.Response
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("no response from server: %w", err)
	}
	return &resp, nil
}

func writeRequest(conn net.Conn, req *protocol.Request) error {
	data, err := protocol.Marshal(req)
	if err != nil {
		return err
	}
	_, err = conn.Write(data)
	return err
}
