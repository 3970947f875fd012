package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"familyhub/internal/config"
	"familyhub/internal/database"
	"familyhub/internal/models"
	"familyhub/internal/repository"
	"familyhub/internal/security"
	"familyhub/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)

	// Initialize services
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	signer, err := security.NewTokenSigner(cfg.InviteTokenSecret)
	if err != nil {
		log.Fatalf("Failed to initialize token signer: %v", err)
	}
	authService := service.NewAuthService(userRepo, familyRepo)
	familyService := service.NewFamilyService(userRepo, familyRepo, invitationRepo, emailService, signer, cfg.InviteTTL)

	// One interactive session per process
	sess := models.NewSession()
	sess.Initialized = true

	runShell(sess, authService, familyService)
}

func runShell(sess *models.Session, auth *service.AuthService, families *service.FamilyService) {
	fmt.Println("Family Hub. Type 'help' for commands.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "help":
			printHelp()

		case "register":
			// register <username> <password> <email> <display name> [family name]
			if len(fields) < 5 {
				fmt.Println("usage: register <username> <password> <email> <display name> [family name]")
				continue
			}
			familyName := fields[4] + "'s family"
			if len(fields) > 5 {
				familyName = strings.Join(fields[5:], " ")
			}
			userID, err := auth.Register(fields[1], fields[2], fields[3], fields[4], "", familyName, models.RoleParent)
			if err != nil {
				fmt.Println("registration failed:", err)
				continue
			}
			fmt.Println("registered user", userID)

		case "join":
			// join <invite token> <username> <password> <email> <display name>
			if len(fields) < 6 {
				fmt.Println("usage: join <invite token> <username> <password> <email> <display name>")
				continue
			}
			inv, err := families.RedeemInvitation(fields[1])
			if err != nil {
				fmt.Println("invitation rejected:", err)
				continue
			}
			userID, err := auth.Register(fields[2], fields[3], fields[4], fields[5], inv.FamilyID, "", models.RoleParent)
			if err != nil {
				fmt.Println("registration failed:", err)
				continue
			}
			if err := families.CompleteInvitation(inv.Code, userID); err != nil {
				fmt.Println("warning:", err)
			}
			fmt.Println("joined family", inv.FamilyID, "as user", userID)

		case "login":
			if len(fields) != 3 {
				fmt.Println("usage: login <username> <password>")
				continue
			}
			user, err := auth.Login(sess, fields[1], fields[2])
			if err != nil {
				fmt.Println("login failed:", err)
				continue
			}
			fmt.Printf("welcome, %s (%s)\n", user.DisplayName, user.Role)

		case "logout":
			auth.Logout(sess)
			fmt.Println("logged out")

		case "whoami":
			ok, user := auth.CheckAuthentication(sess)
			if !ok {
				fmt.Println("not logged in")
				continue
			}
			fmt.Printf("%s (%s), role %s, family %s\n", user.Username, user.DisplayName, user.Role, user.FamilyID)

		case "members":
			user := auth.GetCurrentUser(sess)
			if user == nil {
				fmt.Println("not logged in")
				continue
			}
			members, err := families.GetFamilyMembers(user.FamilyID)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			for _, m := range members {
				fmt.Printf("%s\t%s\t%s\n", m.ID, m.Username, m.Role)
			}

		case "invite":
			if len(fields) != 2 {
				fmt.Println("usage: invite <email>")
				continue
			}
			user := auth.GetCurrentUser(sess)
			if user == nil {
				fmt.Println("not logged in")
				continue
			}
			token, err := families.InviteToFamily(context.Background(), fields[1], user.FamilyID, user.ID)
			if err != nil {
				fmt.Println("invite failed:", err)
				continue
			}
			fmt.Println("invite token:", token)

		case "role":
			if len(fields) != 3 {
				fmt.Println("usage: role <user id> <guest|child|parent|admin>")
				continue
			}
			user := auth.GetCurrentUser(sess)
			if user == nil {
				fmt.Println("not logged in")
				continue
			}
			newRole, ok := models.ParseRole(fields[2])
			if !ok {
				fmt.Println("unknown role:", fields[2])
				continue
			}
			if !auth.UpdateUserRole(fields[1], newRole, user.ID) {
				fmt.Println("role update refused")
				continue
			}
			fmt.Println("role updated")

		case "deactivate", "activate":
			if len(fields) != 2 {
				fmt.Printf("usage: %s <user id>\n", fields[0])
				continue
			}
			user := auth.GetCurrentUser(sess)
			if user == nil {
				fmt.Println("not logged in")
				continue
			}
			if !auth.SetUserActive(fields[1], fields[0] == "activate", user.ID) {
				fmt.Println("activation change refused")
				continue
			}
			fmt.Println("account updated")

		case "quit", "exit":
			return

		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
}

func printHelp() {
	fmt.Println(`commands:
  register <username> <password> <email> <display name> [family name]
  join <invite token> <username> <password> <email> <display name>
  login <username> <password>
  logout
  whoami
  members
  invite <email>
  role <user id> <guest|child|parent|admin>
  deactivate <user id>
  activate <user id>
  quit`)
}
