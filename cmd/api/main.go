package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kinbech/internal/config"
	"kinbech/internal/domain/model"
	"kinbech/internal/handler"
	"kinbech/internal/infra/db"
	"kinbech/internal/infra/notify"
	infraRepo "kinbech/internal/infra/repository"
	"kinbech/internal/infra/upload"
	"kinbech/internal/server"
	"kinbech/internal/sweeper"
	"kinbech/internal/usecase"
	auth "kinbech/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(username string, roles model.RoleSet, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":   username,
		"roles": string(roles),
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envはあれば読む（ローカル用）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.ResetToken{},
		&model.AuditLog{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	resetTokenRepo := infraRepo.NewResetTokenGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: cfg.AccessTTL,
	}

	//画像ストア（Cloudinaryがなければローカル保存）
	var images usecase.ImageStore
	if cfg.CloudinaryURL != "" {
		cld, err := upload.NewCloudinaryStore(cfg.CloudinaryURL)
		if err != nil {
			panic(err)
		}
		images = cld
	} else {
		images = upload.NewLocalStore("static/uploads")
	}

	//再設定リンクの送信先（ゲートウェイがなければログ出力）
	var sender auth.ResetLinkSender
	if cfg.WhatsAppGatewayURL != "" {
		sender = notify.NewWhatsAppSender(cfg.WhatsAppGatewayURL)
	} else {
		sender = notify.NewLogSender()
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Port
	}

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, clock)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, clock)
	resetUC := auth.NewResetPasswordUsecase(userRepo, resetTokenRepo, hasher, sender, idGen, clock, cfg.ResetTokenTTL, baseURL)
	profileUC := usecase.NewProfileUsecase(userRepo)
	productUC := usecase.NewProductUsecase(productRepo, images)
	orderUC := usecase.NewOrderUsecase(txManager, cfg.ServiceFee)
	moderationUC := usecase.NewModerationUsecase(productRepo, userRepo, auditRepo)

	//期限切れ掃除ループ
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sw := sweeper.New(productRepo, resetTokenRepo, clock, cfg.SweepInterval)
	go sw.Run(ctx)

	//Handler生成
	handlers := server.Handlers{
		Auth:    handler.NewAuthHandler(registerUC, loginUC, resetUC),
		Profile: handler.NewProfileHandler(profileUC),
		Product: handler.NewProductHandler(productUC),
		Order:   handler.NewOrderHandler(orderUC),
		Admin:   handler.NewAdminHandler(moderationUC),
	}

	//Server起動
	addr := ":" + cfg.Port
	slog.Info("starting server", "addr", addr)
	if err := server.Start(addr, cfg, handlers); err != nil {
		panic(err)
	}
}
