package routes

import (
	"tooltrack/controllers"
	"tooltrack/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {

	api := r.Group("/api")
	{
		// ================= TECHNICIAN APP =================
		tech := api.Group("/", middlewares.Auth())
		{
			tech.GET("/items", controllers.GetAllItems)
			tech.GET("/items/:id", controllers.GetItemByID)

			requests := tech.Group("/requests")
			{
				requests.GET("/", controllers.MyRequests)
				requests.POST("/", controllers.CreateRequest)
				requests.POST("/:id/receive", controllers.ConfirmReceipt)
			}

			inventory := tech.Group("/my-inventory")
			{
				inventory.GET("/", controllers.MyInventory)
				inventory.POST("/:id/use", controllers.UseInventory)
			}
		}

		// ================= ADMIN APP =================
		admin := api.Group("/admin", middlewares.Auth(), middlewares.RequireAdmin())
		{
			items := admin.Group("/items")
			{
				items.GET("/", controllers.GetAllItems)
				items.GET("/:id", controllers.GetItemByID)
				items.POST("/", controllers.CreateItem)
				items.PUT("/:id", controllers.UpdateItem)
				items.DELETE("/:id", controllers.DeleteItem)
				items.POST("/:id/transfer", controllers.TransferItem)
				items.POST("/:id/image", controllers.UploadItemImage)
			}

			trucks := admin.Group("/trucks")
			{
				trucks.GET("/", controllers.GetAllTrucks)
				trucks.POST("/", controllers.CreateTruck)
				trucks.PUT("/:id", controllers.UpdateTruck)
				trucks.DELETE("/:id", controllers.DeleteTruck)
			}

			categories := admin.Group("/categories")
			{
				categories.GET("/", controllers.GetAllCategories)
				categories.POST("/", controllers.CreateCategory)
				categories.DELETE("/:id", controllers.DeleteCategory)
			}

			requests := admin.Group("/requests")
			{
				requests.GET("/", controllers.AdminListRequests)
				requests.GET("/:id", controllers.AdminGetRequest)
				requests.POST("/:id/fulfill", controllers.FulfillRequest)
			}

			admin.GET("/technician-inventory", controllers.AdminTechnicianInventory)
			admin.POST("/import", controllers.BulkImport)
			admin.GET("/activity", controllers.ListActivity)
			admin.POST("/notifications/test", controllers.SendTestNotification)
		}
	}
}
