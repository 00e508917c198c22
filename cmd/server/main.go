package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/marvinmino/todo-api/internal/config"
	"github.com/marvinmino/todo-api/internal/constants"
	"github.com/marvinmino/todo-api/internal/database"
	"github.com/marvinmino/todo-api/internal/handlers"
	"github.com/marvinmino/todo-api/internal/middleware"
	"github.com/marvinmino/todo-api/internal/repository"
	"github.com/marvinmino/todo-api/internal/services"
	"github.com/marvinmino/todo-api/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionName, store))

	db := database.GetDB()

	// Repositories
	todoRepo := repository.NewTodoRepository(db)
	listRepo := repository.NewTodoListRepository(db)
	tagRepo := repository.NewTagRepository(db)
	shareRepo := repository.NewShareRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	// Services
	imageStore := storage.NewLocalImageStore(cfg.ImageDir)
	guard := services.NewAccessGuard(listRepo)
	activityService := services.NewActivityService(activityRepo, todoRepo, listRepo, tagRepo, commentRepo)
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	todoService := services.NewTodoService(todoRepo, listRepo, tagRepo, guard, imageStore, activityService)
	listService := services.NewTodoListService(listRepo, guard, activityService)
	bulkService := services.NewBulkService(todoRepo, tagRepo)
	shareService := services.NewShareService(shareRepo, userRepo, guard)
	tagService := services.NewTagService(tagRepo, activityService)
	commentService := services.NewCommentService(commentRepo, todoRepo, guard, activityService)
	statsService := services.NewStatisticsService(listRepo, todoRepo)
	exportService := services.NewExportService(db, todoRepo, listRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, userService)
	todoHandler := handlers.NewTodoHandler(todoService)
	listHandler := handlers.NewTodoListHandler(listService)
	bulkHandler := handlers.NewBulkHandler(bulkService)
	shareHandler := handlers.NewShareHandler(shareService, shareRepo)
	tagHandler := handlers.NewTagHandler(tagService)
	commentHandler := handlers.NewCommentHandler(commentService)
	noteHandler := handlers.NewNoteHandler()
	reminderHandler := handlers.NewReminderHandler()
	statsHandler := handlers.NewStatisticsHandler(statsService)
	activityHandler := handlers.NewActivityHandler(activityService)
	exportHandler := handlers.NewExportHandler(exportService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Todo API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/logout", middleware.RequireAuth(), authHandler.Logout)
		api.GET("/user", middleware.RequireAuth(), authHandler.GetCurrentUser)

		// Statistics (protected)
		api.GET("/statistics/dashboard", middleware.RequireAuth(), statsHandler.Dashboard)

		// Todo list routes (protected)
		lists := api.Group("/todo-lists")
		lists.Use(middleware.RequireAuth())
		{
			lists.GET("", listHandler.ListTodoLists)
			lists.POST("", listHandler.CreateTodoList)
			lists.GET("/:id", listHandler.GetTodoList)
			lists.PUT("/:id", listHandler.UpdateTodoList)
			lists.DELETE("/:id", listHandler.DeleteTodoList)
			lists.POST("/:id/archive", listHandler.ArchiveTodoList)
			lists.POST("/:id/restore", listHandler.RestoreTodoList)
			lists.POST("/:id/toggle-favorite", listHandler.ToggleFavorite)

			lists.GET("/:id/notes", noteHandler.ListNotes)
			lists.POST("/:id/notes", noteHandler.CreateNote)
			lists.GET("/:id/notes/:noteId", noteHandler.GetNote)
			lists.PUT("/:id/notes/:noteId", noteHandler.UpdateNote)
			lists.DELETE("/:id/notes/:noteId", noteHandler.DeleteNote)

			lists.GET("/:id/reminders", reminderHandler.ListReminders)
			lists.POST("/:id/reminders", reminderHandler.CreateReminder)
			lists.GET("/:id/reminders/:reminderId", reminderHandler.GetReminder)
			lists.PUT("/:id/reminders/:reminderId", reminderHandler.UpdateReminder)
			lists.DELETE("/:id/reminders/:reminderId", reminderHandler.DeleteReminder)

			lists.GET("/:id/shares", shareHandler.ListShares)
			lists.POST("/:id/shares", shareHandler.Share)
			lists.PUT("/:id/shares/:shareId", shareHandler.UpdateShare)
			lists.DELETE("/:id/shares/:shareId", shareHandler.RevokeShare)
		}

		// Todo routes (protected)
		todos := api.Group("/todos")
		todos.Use(middleware.RequireAuth())
		{
			todos.GET("", todoHandler.ListTodos)
			todos.POST("", todoHandler.CreateTodo)
			todos.POST("/bulk-update", bulkHandler.BulkUpdate)
			todos.POST("/bulk-delete", bulkHandler.BulkDelete)
			todos.POST("/bulk-assign-tags", bulkHandler.BulkAssignTags)
			todos.GET("/:id", todoHandler.GetTodo)
			todos.PUT("/:id", todoHandler.UpdateTodo)
			todos.DELETE("/:id", todoHandler.DeleteTodo)
			todos.POST("/:id/archive", todoHandler.ArchiveTodo)
			todos.POST("/:id/restore", todoHandler.RestoreTodo)

			todos.GET("/:id/comments", commentHandler.ListComments)
			todos.POST("/:id/comments", commentHandler.CreateComment)
			todos.GET("/:id/comments/:commentId", commentHandler.GetComment)
			todos.PUT("/:id/comments/:commentId", commentHandler.UpdateComment)
			todos.DELETE("/:id/comments/:commentId", commentHandler.DeleteComment)
		}

		// Tag routes (protected)
		tags := api.Group("/tags")
		tags.Use(middleware.RequireAuth())
		{
			tags.GET("", tagHandler.ListTags)
			tags.POST("", tagHandler.CreateTag)
			tags.GET("/:id", tagHandler.GetTag)
			tags.PUT("/:id", tagHandler.UpdateTag)
			tags.DELETE("/:id", tagHandler.DeleteTag)
		}

		// Activity log routes (protected)
		activity := api.Group("/activity-logs")
		activity.Use(middleware.RequireAuth())
		{
			activity.GET("", activityHandler.ListActivityLogs)
			activity.GET("/:id", activityHandler.GetActivityLog)
		}

		// Export / import routes (protected)
		exports := api.Group("")
		exports.Use(middleware.RequireAuth())
		{
			exports.POST("/export/todos", exportHandler.ExportTodos)
			exports.POST("/export/todo-lists", exportHandler.ExportTodoLists)
			exports.POST("/import/todos", exportHandler.ImportTodos)
			exports.POST("/import/todo-lists", exportHandler.ImportTodoLists)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
