package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/hallsphere/internal/app/controllers"
	"github.com/yigit/hallsphere/internal/app/models"
	"github.com/yigit/hallsphere/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	extensionController *controllers.ExtensionController,
	studentController *controllers.StudentController,
	provostController *controllers.ProvostController,
	hallController *controllers.HallController,
	complaintController *controllers.ComplaintController,
	noticeController *controllers.NoticeController,
	clearanceController *controllers.ClearanceController,
	statsController *controllers.StatsController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	provostRoles := []string{string(models.RoleProvost), string(models.RoleViceProvost)}

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register/student", authController.RegisterStudent)
		auth.POST("/register/provost", authController.RegisterProvost)
		auth.POST("/register/vice-provost", authController.RegisterViceProvost)
		auth.POST("/login", authController.Login)
	}

	// --- Public Hall routes ---
	halls := v1.Group("/halls")
	{
		halls.GET("", hallController.ListHalls)
		halls.GET("/:id", hallController.GetHall)
		halls.GET("/:id/rooms", hallController.ListRooms)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)

		// Extension routes. Students file and read their own requests;
		// provost staff run the approval queue, group policies and
		// reconciliation within their hall scope.
		extensions := authenticated.Group("/extensions")
		{
			extensionsStudent := extensions.Group("")
			extensionsStudent.Use(middleware.RoleRequired(string(models.RoleStudent)))
			{
				extensionsStudent.POST("", extensionController.RequestExtension)
				extensionsStudent.GET("/me", extensionController.ListOwn)
			}

			extensionsProvost := extensions.Group("")
			extensionsProvost.Use(middleware.RoleRequired(provostRoles...))
			extensionsProvost.Use(authMiddleware.HallScope())
			{
				extensionsProvost.GET("/pending", extensionController.ListPending)
				extensionsProvost.PATCH("/:id/approve", extensionController.ApproveExtension)
				extensionsProvost.PATCH("/:id/reject", extensionController.RejectExtension)
				extensionsProvost.POST("/group-policy", extensionController.ApplyGroupPolicy)
				extensionsProvost.GET("/group-policy-history", extensionController.GroupPolicyHistory)
				extensionsProvost.GET("/students/:studentId", extensionController.ListByStudent)
				extensionsProvost.POST("/students/:studentId/reconcile", extensionController.Reconcile)
			}
		}

		// Student routes
		students := authenticated.Group("/students")
		{
			students.GET("/me", studentController.GetOwnProfile)

			studentsProvost := students.Group("")
			studentsProvost.Use(middleware.RoleRequired(provostRoles...))
			studentsProvost.Use(authMiddleware.HallScope())
			{
				studentsProvost.GET("", studentController.ListApproved)
				studentsProvost.GET("/pending", studentController.ListPending)
				studentsProvost.PATCH("/:id/approve", studentController.ApproveStudent)
				studentsProvost.PATCH("/:id/reject", studentController.RejectStudent)
			}
		}

		// Provost management (VC only)
		provosts := authenticated.Group("/provosts")
		provosts.Use(middleware.RoleRequired(string(models.RoleVC)))
		{
			provosts.GET("/pending", provostController.ListPending)
			provosts.PATCH("/:id/approve", provostController.ApproveProvost)
			provosts.PATCH("/:id/reject", provostController.RejectProvost)
			provosts.PATCH("/:id/assign", provostController.AssignToHall)
			provosts.DELETE("/:id/halls/:hallId", provostController.RemoveFromHall)
		}

		// Platform statistics (VC only)
		authenticated.GET("/stats", middleware.RoleRequired(string(models.RoleVC)), statsController.PlatformStats)

		// Hall management (VC only)
		hallsVC := authenticated.Group("/halls")
		hallsVC.Use(middleware.RoleRequired(string(models.RoleVC)))
		{
			hallsVC.POST("", hallController.CreateHall)
			hallsVC.POST("/:id/rooms", hallController.CreateRoom)
		}

		// Complaint routes
		complaints := authenticated.Group("/complaints")
		{
			complaintsStudent := complaints.Group("")
			complaintsStudent.Use(middleware.RoleRequired(string(models.RoleStudent)))
			complaintsStudent.Use(authMiddleware.HallScope())
			{
				complaintsStudent.POST("", complaintController.CreateComplaint)
			}
			complaints.GET("/me", middleware.RoleRequired(string(models.RoleStudent)), complaintController.ListOwn)

			complaintsProvost := complaints.Group("")
			complaintsProvost.Use(middleware.RoleRequired(provostRoles...))
			complaintsProvost.Use(authMiddleware.HallScope())
			{
				complaintsProvost.GET("", complaintController.ListByHall)
				complaintsProvost.PATCH("/:id/status", complaintController.UpdateStatus)
			}
		}

		// Notice routes
		notices := authenticated.Group("/notices")
		{
			notices.GET("", authMiddleware.HallScope(), noticeController.ListNotices)

			noticesStaff := notices.Group("")
			noticesStaff.Use(middleware.RoleRequired(string(models.RoleProvost), string(models.RoleViceProvost), string(models.RoleVC)))
			{
				noticesStaff.POST("", authMiddleware.OptionalHallScope(), noticeController.CreateNotice)
				noticesStaff.DELETE("/:id", noticeController.DeactivateNotice)
			}
		}

		// Clearance routes
		clearances := authenticated.Group("/clearances")
		{
			clearancesStudent := clearances.Group("")
			clearancesStudent.Use(middleware.RoleRequired(string(models.RoleStudent)))
			{
				clearancesStudent.POST("", clearanceController.RequestClearance)
				clearancesStudent.GET("/me", clearanceController.ListOwn)
			}

			clearancesProvost := clearances.Group("")
			clearancesProvost.Use(middleware.RoleRequired(provostRoles...))
			clearancesProvost.Use(authMiddleware.HallScope())
			{
				clearancesProvost.GET("/pending", clearanceController.ListPending)
				clearancesProvost.PATCH("/:id/approve", clearanceController.ApproveClearance)
				clearancesProvost.PATCH("/:id/reject", clearanceController.RejectClearance)
			}
		}
	}
}
