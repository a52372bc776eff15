// Package fluxpoint is a client for the Fluxpoint image generation and
// Minecraft lookup API.
//
// Descriptors are built with the types in pkg/models and sent through a
// Client:
//
//	client, err := fluxpoint.NewClient(fluxpoint.WithToken(token))
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	img, err := models.CreateBase(
//		models.NewRectangle().WithWidth(1920).WithHeight(1080).WithColor(models.MustRGB(0, 255, 0)),
//	).Build()
//	if err != nil {
//		return err
//	}
//
//	resp, err := client.GetCustomImage(ctx, img)
//	if err != nil {
//		return err // invalid descriptor or no token
//	}
//	switch r := resp.(type) {
//	case *models.GeneratedImage:
//		defer r.Close()
//		_, err = io.Copy(out, r)
//	case *models.FailedResponse:
//		log.Printf("request failed: %d %s", r.Code, r.Message)
//	}
//
// Network and HTTP failures never surface as Go errors; they are returned as
// *models.FailedResponse values. The error return is reserved for misuse.
// Every GetX call has a QueueX counterpart that runs on a background worker
// pool and returns a Future.
package fluxpoint
