package main

import (
	"context"

	"edge-header-policy/internal/models"
	"edge-header-policy/pkg/lambda"

	awslambda "github.com/aws/aws-lambda-go/lambda"
)

var handler *lambda.Handler

func init() {
	var err error
	handler, err = lambda.GetContainerManager().Handler()
	if err != nil {
		panic("Failed to initialize header policy: " + err.Error())
	}
}

func handle(ctx context.Context, event models.Event) (*models.Response, error) {
	return handler.Handle(ctx, event)
}

func main() {
	awslambda.Start(handle)
}
