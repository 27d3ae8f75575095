package main

import (
	"context"
	"log"
	"os"
	"time"

	"chat-messaging-be/internal/entity"
	"chat-messaging-be/internal/repository/unitofwork"
	"chat-messaging-be/internal/service"
	"chat-messaging-be/pkg/database"

	"github.com/fatih/color"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeds a small demo dataset: three users, a threaded conversation and one
// edited message, all written through the real repository layer so the
// notification and history paths behave exactly as in production.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	factory := unitofwork.NewRepositoryFactory(db)
	uow := factory.NewUnitOfWork(ctx)

	color.Cyan("Seeding demo users...")

	alice := &entity.User{Id: uuid.New(), Username: "alice", Email: "alice@example.com", FullName: "Alice Anderson", CreatedAt: time.Now()}
	bob := &entity.User{Id: uuid.New(), Username: "bob", Email: "bob@example.com", FullName: "Bob Brown", CreatedAt: time.Now()}
	carol := &entity.User{Id: uuid.New(), Username: "carol", Email: "carol@example.com", FullName: "Carol Clark", CreatedAt: time.Now()}

	if err := uow.Begin(ctx); err != nil {
		log.Fatalf("Error: begin failed: %v", err)
	}
	defer uow.Rollback()

	for _, u := range []*entity.User{alice, bob, carol} {
		if err := uow.UserRepository().Create(ctx, u); err != nil {
			log.Fatalf("Error: failed to create user %s: %v", u.Username, err)
		}
	}

	color.Cyan("Seeding a threaded conversation...")

	root := seedMessage(ctx, uow, alice, bob, nil, "Hello Bob, did you see the design doc?")
	reply1 := seedMessage(ctx, uow, bob, alice, &root.Id, "Yes! I left comments on section 3.")
	seedMessage(ctx, uow, alice, bob, &reply1.Id, "Great, I'll address them today.")
	seedMessage(ctx, uow, alice, bob, &root.Id, "Also, the deadline moved to Friday.")

	color.Cyan("Seeding an edited message...")

	edited := seedMessage(ctx, uow, bob, alice, nil, "Meeting at 3pm")
	recorder := service.NewEditHistoryRecorder()
	incoming := *edited
	incoming.Content = "Meeting moved to 4pm"
	if _, err := recorder.OnMessageSave(ctx, uow, &incoming, bob.Id); err != nil {
		log.Fatalf("Error: failed to record edit history: %v", err)
	}
	if err := uow.MessageRepository().Update(ctx, &incoming); err != nil {
		log.Fatalf("Error: failed to apply edit: %v", err)
	}

	if err := uow.Commit(); err != nil {
		log.Fatalf("Error: commit failed: %v", err)
	}

	color.Green("Seed complete.")
	color.Yellow("Demo tokens (24h):")
	for _, u := range []*entity.User{alice, bob, carol} {
		color.White("  %-6s %s", u.Username, demoToken(u.Id))
	}
}

func seedMessage(ctx context.Context, uow unitofwork.UnitOfWork, sender, receiver *entity.User, parentId *uuid.UUID, content string) *entity.Message {
	msg := &entity.Message{
		Id:              uuid.New(),
		SenderId:        sender.Id,
		ReceiverId:      receiver.Id,
		ParentMessageId: parentId,
		Content:         content,
		Timestamp:       time.Now(),
		IsRead:          false,
	}
	if err := uow.MessageRepository().Create(ctx, msg); err != nil {
		log.Fatalf("Error: failed to create message: %v", err)
	}
	return msg
}

func demoToken(userId uuid.UUID) string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "<set JWT_SECRET to generate>"
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userId.String(),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "<signing failed>"
	}
	return signed
}
