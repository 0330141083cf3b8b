package endpoint

import (
	"time"

	"github.com/ariebrainware/medical-staff/model"
	"github.com/ariebrainware/medical-staff/repository"
	"github.com/ariebrainware/medical-staff/service"
	"github.com/ariebrainware/medical-staff/util"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

var recordOutcome = outcome{Resource: "Patient record"}

type patientRecordRequest struct {
	Name            string `json:"name" binding:"required" example:"João Lima"`
	CPF             string `json:"cpf" binding:"required,cpf" example:"987.654.321-00"`
	Birth           string `json:"birth" binding:"required,datetime=2006-01-02" example:"1990-04-12"`
	Email           string `json:"email" binding:"required,email" example:"joao@example.com"`
	Phone           string `json:"phone" binding:"required,e164br" example:"5511912345678"`
	Address         string `json:"address" binding:"required,max=100" example:"Rua das Flores, 10"`
	PictureLocation string `json:"picture_location" binding:"required,url" example:"https://cdn.example.com/p/1.png"`
}

func (r patientRecordRequest) toRecord() model.PatientRecord {
	// Birth has passed the datetime binding already.
	birth, _ := time.Parse(model.DateLayout, r.Birth)
	return model.PatientRecord{
		Name:            r.Name,
		CPF:             r.CPF,
		Birth:           datatypes.Date(birth),
		Email:           r.Email,
		Phone:           r.Phone,
		Address:         r.Address,
		PictureLocation: r.PictureLocation,
	}
}

func recordService(c *gin.Context) (*service.RecordService, bool) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return nil, false
	}
	return service.NewRecordService(repository.NewRecordRepository(db, *util.Logger())), true
}

func withSuccess(o outcome, msg string) outcome {
	o.Success = msg
	return o
}

// ListPatientRecords godoc
// @Summary      List patient records
// @Description  List every record filed under the CPF
// @Tags         PatientRecord
// @Produce      json
// @Param        cpf path string true "CPF, formatted or bare digits"
// @Success      200 {object} util.APIResponse{data=[]model.PatientRecord} "Patient records retrieved"
// @Failure      400 {object} util.APIResponse "Malformed CPF"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patient-records/{cpf} [get]
func ListPatientRecords(c *gin.Context) {
	cpf, ok := cpfParamOrRespond(c)
	if !ok {
		return
	}
	svc, ok := recordService(c)
	if !ok {
		return
	}
	records, err := svc.ListByNationalID(c.Request.Context(), cpf)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve patient records", Err: errStorage})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Patient records retrieved", Data: records})
}

// GetPatientRecord godoc
// @Summary      Get patient record
// @Tags         PatientRecord
// @Produce      json
// @Param        id path string true "Record id"
// @Success      200 {object} util.APIResponse{data=model.PatientRecord} "Patient record retrieved"
// @Failure      400 {object} util.APIResponse "Malformed id"
// @Failure      404 {object} util.APIResponse "Patient record not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patient-record/{id} [get]
func GetPatientRecord(c *gin.Context) {
	id, ok := idParamOrRespond(c)
	if !ok {
		return
	}
	svc, ok := recordService(c)
	if !ok {
		return
	}
	respondOperation(c, svc.Get(c.Request.Context(), id), withSuccess(recordOutcome, "Patient record retrieved"), util.CallSuccessOK)
}

// CreatePatientRecord godoc
// @Summary      Create patient record
// @Description  File a new record. An identical record for the same CPF is rejected.
// @Tags         PatientRecord
// @Accept       json
// @Produce      json
// @Param        request body patientRecordRequest true "Record data"
// @Success      201 {object} util.APIResponse{data=model.PatientRecord} "Patient record created"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      403 {object} util.APIResponse "Patient record already exists"
// @Failure      429 {object} util.APIResponse "Too many requests"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patient-records [post]
func CreatePatientRecord(c *gin.Context) {
	var req patientRecordRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	svc, ok := recordService(c)
	if !ok {
		return
	}
	respondOperation(c, svc.Create(c.Request.Context(), req.toRecord()), withSuccess(recordOutcome, "Patient record created"), util.CallSuccessCreated)
}

// ReplacePatientRecord godoc
// @Summary      Replace patient record
// @Description  Replace every field of the record except its id and creation time
// @Tags         PatientRecord
// @Accept       json
// @Produce      json
// @Param        id path string true "Record id"
// @Param        request body patientRecordRequest true "Replacement record"
// @Success      200 {object} util.APIResponse{data=model.PatientRecord} "Patient record updated"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      404 {object} util.APIResponse "Patient record not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patient-records/{id} [put]
func ReplacePatientRecord(c *gin.Context) {
	id, ok := idParamOrRespond(c)
	if !ok {
		return
	}
	var req patientRecordRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	svc, ok := recordService(c)
	if !ok {
		return
	}
	respondOperation(c, svc.Replace(c.Request.Context(), id, req.toRecord()), withSuccess(recordOutcome, "Patient record updated"), util.CallSuccessOK)
}

// DeletePatientRecord godoc
// @Summary      Delete patient record
// @Tags         PatientRecord
// @Produce      json
// @Param        id path string true "Record id"
// @Success      200 {object} util.APIResponse{data=model.PatientRecord} "Patient record deleted"
// @Failure      400 {object} util.APIResponse "Malformed id"
// @Failure      404 {object} util.APIResponse "Patient record not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patient-records/{id} [delete]
func DeletePatientRecord(c *gin.Context) {
	id, ok := idParamOrRespond(c)
	if !ok {
		return
	}
	svc, ok := recordService(c)
	if !ok {
		return
	}
	respondOperation(c, svc.Delete(c.Request.Context(), id), withSuccess(recordOutcome, "Patient record deleted"), util.CallSuccessOK)
}
