package restexecutor

import (
	"net/http"

	"github.com/criyle/go-grader/cmd/go-grader/model"
	"github.com/criyle/go-grader/worker"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type cmdHandle struct {
	worker        worker.Worker
	workDirPrefix []string
	logger        *zap.Logger
}

// NewCmdHandle creates a new grading handle
func NewCmdHandle(worker worker.Worker, workDirPrefix []string, logger *zap.Logger) Register {
	return &cmdHandle{
		worker:        worker,
		workDirPrefix: workDirPrefix,
		logger:        logger,
	}
}

func (c *cmdHandle) Register(r *gin.Engine) {
	// Run handle
	r.POST("/run", c.handleRun)
}

func (c *cmdHandle) handleRun(ctx *gin.Context) {
	var req model.Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.Error(err)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, err.Error())
		return
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	r, err := model.ConvertRequest(&req, c.workDirPrefix)
	if err != nil {
		ctx.Error(err)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, err.Error())
		return
	}
	c.logger.Sugar().Debugf("request: %+v", r)
	rt := <-c.worker.Submit(ctx.Request.Context(), r)
	c.logger.Sugar().Debugf("response: %+v", rt)
	if rt.Error != nil {
		ctx.Error(rt.Error)
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, rt.Error.Error())
		return
	}
	ctx.JSON(http.StatusOK, model.ConvertResponse(rt))
}
