package service

const tracerName = "github.com/RoyceAzure/lab/kitchenhub/internal/service"
