package routev1

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "facegate.io/application/appErrors"
	"facegate.io/application/controller"
	"facegate.io/application/controller/dto"
	"facegate.io/application/interfaces"
)

func LivenessRouter(router *gin.RouterGroup) {
	livenessRouter := router.Group("/liveness")
	{
		livenessRouter.POST("/analyze", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.AnalyzeImageRequest
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx, &appContext.RequestID)
				return
			}
			controller.AnalyzeImage(&interfaces.ApplicationContext[dto.AnalyzeImageRequest]{
				Ctx:       ctx,
				Body:      &body,
				RequestID: appContext.RequestID,
			})
		})

		livenessRouter.POST("/temporal", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.TemporalRequest
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx, &appContext.RequestID)
				return
			}
			controller.AnalyzeFrames(&interfaces.ApplicationContext[dto.TemporalRequest]{
				Ctx:       ctx,
				Body:      &body,
				RequestID: appContext.RequestID,
			})
		})

		livenessRouter.POST("/session", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.SessionRequest
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx, &appContext.RequestID)
				return
			}
			controller.AnalyzeSession(&interfaces.ApplicationContext[dto.SessionRequest]{
				Ctx:       ctx,
				Body:      &body,
				RequestID: appContext.RequestID,
			})
		})

		livenessRouter.POST("/tune", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.TuneRequest
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx, &appContext.RequestID)
				return
			}
			controller.TuneThreshold(&interfaces.ApplicationContext[dto.TuneRequest]{
				Ctx:       ctx,
				Body:      &body,
				RequestID: appContext.RequestID,
			})
		})

		livenessRouter.GET("/calibrations", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			body := dto.ListCalibrationRunsRequest{Limit: dto.DefaultRunListLimit}
			if limitStr := ctx.Query("limit"); limitStr != "" {
				if limit, err := strconv.ParseInt(limitStr, 10, 64); err == nil {
					body.Limit = limit
				}
			}
			if status := ctx.Query("status"); status != "" {
				body.Status = &status
			}
			controller.ListCalibrationRuns(&interfaces.ApplicationContext[dto.ListCalibrationRunsRequest]{
				Ctx:       ctx,
				Body:      &body,
				RequestID: appContext.RequestID,
			})
		})

		livenessRouter.GET("/calibrations/:id", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.FetchCalibrationRun(&interfaces.ApplicationContext[any]{
				Ctx:       ctx,
				Param:     map[string]string{"id": ctx.Param("id")},
				RequestID: appContext.RequestID,
			})
		})

		livenessRouter.GET("/threshold", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.ActiveThreshold(&interfaces.ApplicationContext[any]{
				Ctx:       ctx,
				RequestID: appContext.RequestID,
			})
		})

		livenessRouter.DELETE("/threshold", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.ClearThreshold(&interfaces.ApplicationContext[any]{
				Ctx:       ctx,
				RequestID: appContext.RequestID,
			})
		})
	}
}
